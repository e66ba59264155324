package app

import (
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/vault/pkg/cryptox"
	"github.com/aussiebroadwan/vault/pkg/jwtx"
)

// consentSecretSize is the size of a generated consent signing secret.
const consentSecretSize = 32

// InitSecrets loads the key that seals stored passwords and the secret that
// signs consent markers.
//
// Both fall back to values generated at startup when unconfigured:
//   - without a master key, stored entries cannot be opened after a restart.
//   - without a consent secret, every browser is asked for consent again
//     after a restart.
//
// Only development should run that way.
func InitSecrets(cfg Config, logger *slog.Logger) (*cryptox.Sealer, *jwtx.HS256Signer, error) {
	sealer, ephemeral, err := cryptox.LoadSealer(cfg.MasterKeyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load master key: %w", err)
	}
	if ephemeral {
		logger.Warn("no master key configured, stored passwords will not survive a restart")
	} else {
		logger.Info("master key loaded", "path", cfg.MasterKeyPath)
	}

	secret := []byte(cfg.ConsentSecret)
	if len(secret) == 0 {
		secret = make([]byte, consentSecretSize)
		if _, err := rand.Read(secret); err != nil {
			return nil, nil, fmt.Errorf("failed to generate consent secret: %w", err)
		}
		logger.Warn("no consent secret configured, consent markers will not survive a restart")
	}

	signer, err := jwtx.NewHS256Signer(secret, cfg.Issuer)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create consent signer: %w", err)
	}
	return sealer, signer, nil
}
