package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "quorum", cfg.DBName)
	assert.Equal(t, "localhost:6379", cfg.RedisURL)
	assert.NotEmpty(t, cfg.SessionSecret)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("DB_NAME", "quorum_test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "quorum_test", cfg.DBName)
}

func TestValidateProduction(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name: "default secret rejected",
			cfg: Config{
				Port:          "8080",
				Env:           "production",
				SessionSecret: "dev-secret-change-in-production",
				DBPassword:    "s3cure-password",
			},
			wantErr: "SESSION_SECRET must be changed",
		},
		{
			name: "short secret rejected",
			cfg: Config{
				Port:          "8080",
				Env:           "production",
				SessionSecret: "too-short",
				DBPassword:    "s3cure-password",
			},
			wantErr: "at least 32 characters",
		},
		{
			name: "default db password rejected",
			cfg: Config{
				Port:          "8080",
				Env:           "production",
				SessionSecret: "0123456789abcdef0123456789abcdef",
				DBPassword:    "quorum",
			},
			wantErr: "DB_PASSWORD",
		},
		{
			name: "valid production config",
			cfg: Config{
				Port:          "8080",
				Env:           "production",
				SessionSecret: "0123456789abcdef0123456789abcdef",
				DBPassword:    "s3cure-password",
				DBSSLMode:     "require",
			},
		},
		{
			name:    "missing port rejected",
			cfg:     Config{SessionSecret: "x"},
			wantErr: "PORT is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
