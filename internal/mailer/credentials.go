package mailer

// Placeholder values shipped in sample configuration. Either one counts as
// "not configured"
const (
	PlaceholderSender = "your-email@gmail.com"
	PlaceholderSecret = "your-app-password"
)

// Credentials is either Unconfigured or Configured. Unconfigured selects
// demo mode; no email transport is ever contacted
type Credentials interface {
	isCredentials()
}

// Unconfigured means the sender address or secret is absent or a placeholder
type Unconfigured struct{}

// Configured carries a usable sender address and secret
type Configured struct {
	Sender string
	Secret string
}

func (Unconfigured) isCredentials() {}
func (Configured) isCredentials()   {}

// ResolveCredentials decides the mode from the two raw configuration values
// This is a presence check, not a credential validity check
func ResolveCredentials(sender, secret string) Credentials {
	if sender == "" || sender == PlaceholderSender || secret == "" || secret == PlaceholderSecret {
		return Unconfigured{}
	}
	return Configured{Sender: sender, Secret: secret}
}
