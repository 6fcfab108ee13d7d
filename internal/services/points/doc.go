/*
Package points owns the virtual-currency ledger and is the only mutation
path for points balances.

Every balance mutation executes as one atomic unit: the balance row is
locked, validated and written together with the ledger entry, so concurrent
requests against the same account serialize and the cached balance always
equals the sum of completed credits minus completed debits.

Transactions are either created completed (admin credits, redemptions, peer
transfers) or created pending and later approved or rejected. Approval is
idempotent: the status flip is guarded on the row still being pending, so the
balance delta applies exactly once no matter how many approvals race.

Usage:

	svc := points.NewService(ledgerRepo, logger, nil)

	txID, err := svc.AddPoints(ctx, userID, 100, "signup bonus", models.NoReference())

	result, err := svc.TransferPoints(ctx, fromID, toID, 50, "thanks!")

	id, err := svc.CreatePendingCredit(ctx, userID, 500, "package purchase", models.PackageRef(pkgID))
	err = svc.ApproveTransaction(ctx, id)
*/
package points
