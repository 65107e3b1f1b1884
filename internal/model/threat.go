package model

// ThreatTag names the kind of threat a scoring layer detected.
// Tags feed the opinion text; their order is detection order.
type ThreatTag string

// Threat tags emitted by the scoring layers.
const (
	ThreatSocialEngineering     ThreatTag = "Social Engineering"
	ThreatAlgorithmicGeneration ThreatTag = "Algorithmic Generation"
	ThreatBrandImpersonation    ThreatTag = "Brand Impersonation"
	ThreatHostMasking           ThreatTag = "Host Masking"
	ThreatLowReputationTLD      ThreatTag = "Low-Reputation TLD"
)

// ThreatTags returns every threat tag in the order the scoring layers
// can emit them.
func ThreatTags() []ThreatTag {
	return []ThreatTag{
		ThreatSocialEngineering,
		ThreatAlgorithmicGeneration,
		ThreatBrandImpersonation,
		ThreatHostMasking,
		ThreatLowReputationTLD,
	}
}

// ThreatInfo contains reader-facing guidance about a threat tag.
type ThreatInfo struct {
	Impact         string
	Recommendation string
}

// threatInfoMapping maps threat tags to their guidance.
// This is the single source for the text shown by the report writers
// and the education page.
var threatInfoMapping = map[ThreatTag]ThreatInfo{
	ThreatSocialEngineering: {
		Impact:         "Trust words such as \"secure\" or \"login\" on an unencrypted link are used to make a fake page feel official.",
		Recommendation: "Do not enter credentials. Navigate to the service by typing its known address.",
	},
	ThreatAlgorithmicGeneration: {
		Impact:         "Random-looking hostnames are typical of domains registered in bulk by automated phishing kits.",
		Recommendation: "Treat the link as disposable infrastructure and avoid interacting with it.",
	},
	ThreatBrandImpersonation: {
		Impact:         "A well-known brand name appears outside the brand's own domain, a common lure for credential theft.",
		Recommendation: "Check that the registered domain is exactly the brand's official domain before trusting the page.",
	},
	ThreatHostMasking: {
		Impact:         "Everything before '@' is ignored by the browser, so the visible text can hide the real destination.",
		Recommendation: "Read the part after the '@' symbol; that is the host you would actually visit.",
	},
	ThreatLowReputationTLD: {
		Impact:         "The domain extension is cheap to register and heavily used by phishing campaigns.",
		Recommendation: "Apply extra scrutiny and prefer links on the organization's usual domain.",
	},
}

// GetThreatInfo returns the guidance for a threat tag.
// Returns a generic ThreatInfo if the tag is not in the mapping.
func GetThreatInfo(tag ThreatTag) ThreatInfo {
	if info, ok := threatInfoMapping[tag]; ok {
		return info
	}
	return ThreatInfo{
		Impact:         "Unknown threat tag. Review manually.",
		Recommendation: "Investigate the URL before visiting it.",
	}
}

// UniqueThreats returns tags with duplicates removed, keeping first-seen order.
func UniqueThreats(tags []ThreatTag) []ThreatTag {
	seen := make(map[ThreatTag]bool, len(tags))
	unique := make([]ThreatTag, 0, len(tags))
	for _, t := range tags {
		if seen[t] {
			continue
		}
		seen[t] = true
		unique = append(unique, t)
	}
	return unique
}
