package protocol

// Standard JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	// Server-defined range used by Ethereum clients for execution errors.
	CodeServerErrorStart = -32099
	CodeServerErrorEnd   = -32000
)

// Notification methods used by the supported dialects.
const (
	MethodEthSubscription = "eth_subscription"

	MethodSolanaAccountNotification      = "accountNotification"
	MethodSolanaBlockNotification        = "blockNotification"
	MethodSolanaLogsNotification         = "logsNotification"
	MethodSolanaProgramNotification      = "programNotification"
	MethodSolanaRootNotification         = "rootNotification"
	MethodSolanaSignatureNotification    = "signatureNotification"
	MethodSolanaSlotNotification         = "slotNotification"
	MethodSolanaSlotsUpdatesNotification = "slotsUpdatesNotification"
	MethodSolanaVoteNotification         = "voteNotification"
)

var subscriptionNotifications = map[string]bool{
	MethodEthSubscription:                true,
	MethodSolanaAccountNotification:      true,
	MethodSolanaBlockNotification:        true,
	MethodSolanaLogsNotification:         true,
	MethodSolanaProgramNotification:      true,
	MethodSolanaRootNotification:         true,
	MethodSolanaSignatureNotification:    true,
	MethodSolanaSlotNotification:         true,
	MethodSolanaSlotsUpdatesNotification: true,
	MethodSolanaVoteNotification:         true,
}

// IsSubscriptionNotification reports whether method is a subscription push
// of either dialect.
func IsSubscriptionNotification(method string) bool {
	return subscriptionNotifications[method]
}
