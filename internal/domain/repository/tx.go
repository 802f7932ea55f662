package repository

// TxRepos repositorios atados a una misma transacción.
// Lo entrega TxRunner.Run; fuera de la función callback no deben usarse.
type TxRepos struct {
	Products  ProductRepository
	Movements MovementRepository
	Audit     AuditRepository
}
