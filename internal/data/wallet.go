package data

// Wallets is the allow-list of addresses permitted to submit and claim
// orders.
type Wallets interface {
	Exists(address string) (bool, error)
	Insert(address string) error
}
