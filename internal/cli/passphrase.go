package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/iudanet/corekeeper/internal/validation"
)

// EnvPassphrase - переменная окружения с passphrase ключа устройства
const EnvPassphrase = "COREKEEPER_PASSPHRASE"

// getPassphrase returns the passphrase, trying in order:
// 1. COREKEEPER_PASSPHRASE environment variable
// 2. --passphrase-file
// 3. interactive prompt, asked twice when confirm is set
func (c *Cli) getPassphrase(confirm bool) (string, error) {
	if env := os.Getenv(EnvPassphrase); env != "" {
		return env, nil
	}

	if c.opts.PassphraseFile != "" {
		content, err := os.ReadFile(c.opts.PassphraseFile)
		if err != nil {
			return "", fmt.Errorf("failed to read passphrase file: %w", err)
		}
		// Убираем trailing newline/whitespace
		passphrase := strings.TrimSpace(string(content))
		if passphrase == "" {
			return "", fmt.Errorf("passphrase file is empty")
		}
		return passphrase, nil
	}

	prompt := "Passphrase: "
	if confirm {
		prompt = fmt.Sprintf("Passphrase (min %d chars): ", validation.MinPassphraseLen)
	}
	passphrase, err := c.io.ReadPassword(prompt)
	if err != nil {
		return "", fmt.Errorf("failed to read passphrase: %w", err)
	}
	if passphrase == "" {
		return "", fmt.Errorf("passphrase cannot be empty")
	}

	if confirm {
		again, err := c.io.ReadPassword("Confirm passphrase: ")
		if err != nil {
			return "", fmt.Errorf("failed to read confirmation: %w", err)
		}
		if again != passphrase {
			return "", fmt.Errorf("passphrases do not match")
		}
	}
	return passphrase, nil
}
