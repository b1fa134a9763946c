package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/julianstephens/planme/internal/constants"
	"github.com/julianstephens/planme/internal/keyring"
)

type CredentialCmd struct {
	Set    CredentialSetCmd    `cmd:"" help:"Store an LLM API key in the OS keyring."`
	Status CredentialStatusCmd `cmd:"" help:"Show whether an API key is stored."`
	Delete CredentialDeleteCmd `cmd:"" help:"Remove an LLM API key from the OS keyring."`
}

// CredentialSetCmd stores a provider API key in the OS keyring
type CredentialSetCmd struct {
	Provider string `arg:"" optional:"" enum:"openrouter,gemini" default:"openrouter" help:"Provider the key belongs to."`
	Key      string `help:"API key. Read from stdin when omitted."`

	stdin io.Reader
}

func (cmd *CredentialSetCmd) Run(ctx *Context) error {
	key := strings.TrimSpace(cmd.Key)
	if key == "" {
		in := cmd.stdin
		if in == nil {
			in = os.Stdin
			fmt.Printf("Enter %s API key: ", cmd.Provider)
		}
		line, err := bufio.NewReader(in).ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read API key: %w", err)
		}
		key = strings.TrimSpace(line)
	}
	if key == "" {
		return errors.New("API key cannot be empty")
	}

	if err := keyring.SetAPIKey(cmd.Provider, key); err != nil {
		return err
	}

	fmt.Printf("✓ %s API key stored in OS keyring (%s)\n", cmd.Provider, maskKey(key))
	return nil
}

// CredentialStatusCmd reports keyring availability and stored keys
type CredentialStatusCmd struct{}

func (cmd *CredentialStatusCmd) Run(ctx *Context) error {
	if !keyring.IsAvailable() {
		fmt.Println("❌ OS keyring is not available on this system")
		return errors.New("keyring unavailable")
	}
	fmt.Println("✓ OS keyring is available")

	for _, provider := range []string{constants.ProviderOpenRouter, constants.ProviderGemini} {
		key, err := keyring.GetAPIKey(provider)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: %s\n", provider, maskKey(key))
		case errors.Is(err, keyring.ErrNotFound):
			fmt.Printf("ℹ %s: not stored\n", provider)
		default:
			return err
		}
	}
	return nil
}

// CredentialDeleteCmd removes a provider API key from the OS keyring
type CredentialDeleteCmd struct {
	Provider string `arg:"" optional:"" enum:"openrouter,gemini" default:"openrouter" help:"Provider the key belongs to."`
}

func (cmd *CredentialDeleteCmd) Run(ctx *Context) error {
	if err := keyring.DeleteAPIKey(cmd.Provider); err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return fmt.Errorf("no %s API key found in keyring", cmd.Provider)
		}
		return err
	}

	fmt.Printf("✓ %s API key deleted from OS keyring\n", cmd.Provider)
	return nil
}

// maskKey keeps only the last four characters of a secret
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}
