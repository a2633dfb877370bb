package model

// PassphraseRequest represents a passphrase generation request.
// Raw keeps the unparsed "w" value so non-numeric input can be logged.
type PassphraseRequest struct {
	Words int
	Raw   string
}

// PassphraseResponse represents a passphrase generation response.
type PassphraseResponse struct {
	Wordlist string `json:"wordlist"`
}
