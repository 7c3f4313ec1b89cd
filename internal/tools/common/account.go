package common

// DefaultAccount is the account used when neither the request nor the
// configuration names one.
const DefaultAccount = "default"

// GetAccountFromArgs returns the Google account a tool call runs as.
//
// Priority order:
//  1. Explicit "account" argument in request
//  2. The configured account
//  3. "default"
func GetAccountFromArgs(args map[string]interface{}, configured string) string {
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		return accountVal
	}
	if configured != "" {
		return configured
	}
	return DefaultAccount
}
