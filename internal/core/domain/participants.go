package domain

// TransferParticipants holds the resolved parties of an account-to-account
// transfer after validation.
type TransferParticipants struct {
	SourceAccount      Account
	SourceWallet       Wallet
	DestinationAccount Account
	DestinationWallet  Wallet
}

// SendMoneyParticipants holds the resolved parties of a send-money
// operation, looked up by account number rather than internal id.
type SendMoneyParticipants struct {
	Sender         Account
	SenderWallet   Wallet
	Receiver       Account
	ReceiverWallet Wallet
}

// ExchangeParticipants holds the resolved account and wallets of a
// currency exchange for a single user.
type ExchangeParticipants struct {
	Account      Account
	SourceWallet Wallet
	TargetWallet Wallet
}
