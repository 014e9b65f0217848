package harvest

import "strings"

const (
	ScoreCompanyDomain   = 1.0
	ScoreGenericProvider = 0.5
)

var genericProviders = map[string]struct{}{
	"gmail.com":      {},
	"yahoo.com":      {},
	"hotmail.com":    {},
	"outlook.com":    {},
	"icloud.com":     {},
	"protonmail.com": {},
}

// Domain returns the part after the last "@".
func Domain(email string) string {
	if i := strings.LastIndex(email, "@"); i >= 0 {
		return email[i+1:]
	}
	return ""
}

func IsGenericProvider(domain string) bool {
	_, ok := genericProviders[strings.ToLower(domain)]
	return ok
}

// Score is a coarse signal: company domains are worth more than free mail.
func Score(email string) float64 {
	if IsGenericProvider(Domain(email)) {
		return ScoreGenericProvider
	}
	return ScoreCompanyDomain
}

// CompanyFor guesses the company from the first label of the domain. Free mail
// providers say nothing about the company.
func CompanyFor(email string) string {
	domain := Domain(email)
	if domain == "" || IsGenericProvider(domain) {
		return ""
	}
	label, _, _ := strings.Cut(domain, ".")
	return label
}

// LocalPart is used as the lead name when nothing better is known.
func LocalPart(email string) string {
	local, _, _ := strings.Cut(email, "@")
	return local
}
