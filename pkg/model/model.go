package model

// Labels of the permutation strategies, as reported in the "fuzzer" field
const (
	Original      = "Original*"
	Addition      = "Addition"
	Bitsquatting  = "Bitsquatting"
	Homoglyph     = "Homoglyph"
	Hyphenation   = "Hyphenation"
	Insertion     = "Insertion"
	Omission      = "Omission"
	Repetition    = "Repetition"
	Replacement   = "Replacement"
	Subdomain     = "Subdomain"
	Transposition = "Transposition"
	VowelSwap     = "Vowel swap"
	Various       = "Various"
)

// Fuzzers lists every strategy label in generation order
var Fuzzers = []string{
	Original,
	Addition,
	Bitsquatting,
	Homoglyph,
	Hyphenation,
	Insertion,
	Omission,
	Repetition,
	Replacement,
	Subdomain,
	Transposition,
	VowelSwap,
	Various,
}

// Variant represents a generated domain and the strategy which produced it
type Variant struct {
	Domain string `json:"domain-name"`
	Fuzzer string `json:"fuzzer"`
}

// Candidate is a variant queued for resolution by the watch workers
type Candidate struct {
	Variant
	Original string
}

// Result represents a variant found to be registered
type Result struct {
	Domain      string   `json:"domain"`
	IDN         string   `json:"IDN,omitempty"`
	Skeleton    string   `json:"skeleton,omitempty"`
	Fuzzer      string   `json:"fuzzer"`
	Original    string   `json:"original"`
	Addresses   []string `json:"addresses"`
	ParkedScore float64  `json:"parked_score"`
	Screenshot  string   `json:"screenshot,omitempty"`
}

// API represents the definition payload of the API root
type API struct {
	URL                    string `json:"url"`
	DomainToHexadecimalURL string `json:"domain_to_hexadecimal_url"`
	DomainFuzzerURL        string `json:"domain_fuzzer_url"`
	ParkedCheckURL         string `json:"parked_check_url"`
	IPResolutionURL        string `json:"ip_resolution_url"`
}
