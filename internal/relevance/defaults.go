package relevance

// DefaultGenericProviders lists the free consumer mail hosts rejected by rule 1.
func DefaultGenericProviders() []string {
	return []string{
		"gmail.com",
		"yahoo.com",
		"hotmail.com",
		"outlook.com",
		"icloud.com",
		"mail.ru",
		"yandex.ru",
		"ya.ru",
		"bk.ru",
		"inbox.ru",
	}
}

// DefaultExcludedSuffixes lists SaaS, tracking and CDN domains whose
// addresses are marketing plumbing rather than operator contacts.
func DefaultExcludedSuffixes() []string {
	return []string{
		"wixpress.com",
		"sentry.io",
		"mysite.com",
		"hubspot.com",
		"mailchimp.com",
		"zoho.com",
		"zohomail.com",
		"medium.com",
		"wordpress.com",
		"googleusercontent.com",
		"amazonaws.com",
	}
}

// DefaultSocialHosts are social and video platforms whose URLs are dropped
// before any fetch.
func DefaultSocialHosts() []string {
	return []string{
		"facebook.com",
		"m.facebook.com",
		"twitter.com",
		"x.com",
		"instagram.com",
		"linkedin.com",
		"youtube.com",
		"tiktok.com",
		"reddit.com",
		"pinterest.com",
		"wa.me",
		"api.whatsapp.com",
	}
}

// DefaultRelevanceKeywords carry the aviation vocabulary used by rule 5.
func DefaultRelevanceKeywords() []string {
	return []string{
		"air", "avia", "airline", "airlines", "airways", "airport",
		"aircraft", "jet", "jets", "charter", "charters", "flight",
		"flights", "aero", "ops", "heli", "helicopter", "cargo", "fleet",
		"crew", "dispatch", "ground", "hangar", "handling",
	}
}

// DefaultTrustedLocalParts are the role-account prefixes accepted by rule 4.
func DefaultTrustedLocalParts() []string {
	return []string{
		"info", "sales", "ops", "charter", "booking", "reservations",
		"dispatch", "support", "cargo", "handling",
	}
}

// DefaultRegionalTLDs are the geo-targeted TLDs accepted by rule 6: the Gulf,
// Russia, and the African ccTLD set the harvest campaigns target.
func DefaultRegionalTLDs() []string {
	return []string{
		"ru", "su", "ae", "qa", "sa", "bh", "kw", "om", "aero",
		"za", "zm", "zw", "ng", "gh", "ke", "ug", "tz", "et", "er",
		"dj", "sd", "ss", "eg", "ly", "tn", "ma", "dz", "ao", "na",
		"bw", "mz", "mw", "mg", "ga", "cm", "cg", "cd", "cf", "td",
		"ne", "ml", "bf", "ci", "gn", "gw", "gm", "sl", "lr", "bj",
		"tg", "sn", "mr", "st", "gq", "cv", "sc", "mu", "km", "sz",
		"ls", "bi", "so", "rw",
	}
}

// DefaultConfig assembles the stock vocabulary into a ready Config.
func DefaultConfig() Config {
	return Config{
		GenericProviderDomains: SetOf(DefaultGenericProviders()),
		ExcludedDomainSuffixes: DefaultExcludedSuffixes(),
		TrustedLocalParts:      DefaultTrustedLocalParts(),
		RelevanceKeywords:      DefaultRelevanceKeywords(),
		RegionalTLDs:           SetOf(DefaultRegionalTLDs()),
	}
}

// SetOf builds the lookup-set form used by Config fields.
func SetOf(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}

	return set
}
