package ledgerv1

// BrokerRepository resolves brokers by id.
//
//go:generate mockgen -source interface.go -destination=mock/interface_mock.go -package=ledgerv1_mock
type BrokerRepository interface {
	FindBrokerByID(id int64) *Broker
	AddBroker(broker *Broker)
}

// ShareholderRepository resolves shareholders by id.
type ShareholderRepository interface {
	FindShareholderByID(id int64) *Shareholder
	AddShareholder(shareholder *Shareholder)
}
