package users

// BlacklistedEmails lists test and internal accounts that must never
// appear in analytics or in the users listing. Kept as data rather
// than a flag column so ops can audit the exclusions in one place.
var BlacklistedEmails = []string{
	"test@upautomate.com",
	"qa@upautomate.com",
	"staging@upautomate.com",
	"demo@upautomate.com",
	"internal-monitor@upautomate.com",
}
