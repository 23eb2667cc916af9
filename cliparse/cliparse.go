// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/chain-vote/auth"
)

// Ledger backends
const (
	LedgerEthereum = "ethereum"
	LedgerPostgres = "postgres"
	LedgerSQLite   = "sqlite"
	LedgerMemory   = "memory"
)

const (
	DefaultPort          = 8080
	DefaultRPCURL        = "http://127.0.0.1:7545"
	DefaultLedgerTimeout = 15 * time.Second
	DefaultMaxCandidates = 1024
)

// DefaultCandidates seed the memory ledger and provisioning when none are
// configured.
var DefaultCandidates = []string{"Karthik", "Sadwik", "Anirudh", "Nikhil", "Ganesh"}

type Config struct {
	Port            int
	Ledger          string
	RPCURL          string
	ContractAddress string
	DatabaseURL     string
	DefaultVoter    string
	LedgerTimeout   time.Duration
	MaxCandidates   int
	WebDir          string
	LogSalt         string
	Candidates      []string
	CandidatesFile  string
	EnvFile         string
	Debug           bool
}

// ParseFlags validates flags and fills unset values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var candidates string

	fs := flag.NewFlagSet("chain-vote", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.Ledger, "l", "", "Ledger backend (ethereum, postgres, sqlite or memory)")
	fs.StringVar(&cfg.Ledger, "ledger", "", "Ledger backend (ethereum, postgres, sqlite or memory)")
	fs.StringVar(&cfg.RPCURL, "rpc-url", "", "Ethereum JSON-RPC URL")
	fs.StringVar(&cfg.ContractAddress, "contract", "", "Voting contract address")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DefaultVoter, "default-voter", "", "Voter address used when a request has no 'from'")
	fs.DurationVar(&cfg.LedgerTimeout, "ledger-timeout", 0, "Timeout for each ledger call")
	fs.IntVar(&cfg.MaxCandidates, "max-candidates", 0, "Upper bound on candidate lookups")
	fs.StringVar(&cfg.WebDir, "web-dir", "", "Directory of static files served at /")
	fs.StringVar(&candidates, "candidates", "", "Comma separated candidate names (memory ledger, provision)")
	fs.StringVar(&cfg.CandidatesFile, "candidates-file", "", "YAML file listing candidates (provision)")
	fs.StringVar(&cfg.EnvFile, "env-file", ".env", "Environment file loaded before reading env variables")
	fs.BoolVar(&cfg.Debug, "debug", false, "Debug logging")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.LogSalt, "log-salt", "", "Salt for hashed addresses in logs (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.EnvFile != "" {
		if err := godotenv.Load(cfg.EnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("failed to load %s: %w", cfg.EnvFile, err)
		}
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}

	if cfg.Ledger == "" {
		cfg.Ledger = os.Getenv("LEDGER_BACKEND")
		if cfg.Ledger == "" {
			cfg.Ledger = LedgerEthereum
		}
	}
	if cfg.RPCURL == "" {
		cfg.RPCURL = os.Getenv("RPC_URL")
		if cfg.RPCURL == "" {
			cfg.RPCURL = DefaultRPCURL
		}
	}
	if cfg.ContractAddress == "" {
		cfg.ContractAddress = os.Getenv("CONTRACT_ADDRESS")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DefaultVoter == "" {
		cfg.DefaultVoter = os.Getenv("DEFAULT_VOTER")
	}

	if cfg.LedgerTimeout == 0 {
		if s := os.Getenv("LEDGER_TIMEOUT"); s != "" {
			d, err := time.ParseDuration(s)
			if err != nil {
				return Config{}, errors.New("invalid LEDGER_TIMEOUT env variable")
			}
			cfg.LedgerTimeout = d
		} else {
			cfg.LedgerTimeout = DefaultLedgerTimeout
		}
	}
	if cfg.LedgerTimeout < 0 {
		return Config{}, errors.New("ledger timeout must be positive")
	}

	if cfg.MaxCandidates == 0 {
		if s := os.Getenv("MAX_CANDIDATES"); s != "" {
			n, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid MAX_CANDIDATES env variable")
			}
			cfg.MaxCandidates = n
		} else {
			cfg.MaxCandidates = DefaultMaxCandidates
		}
	}
	if cfg.MaxCandidates < 0 {
		return Config{}, errors.New("max candidates must be positive")
	}

	if cfg.WebDir == "" {
		cfg.WebDir = os.Getenv("WEB_DIR")
	}
	if candidates == "" {
		candidates = os.Getenv("CANDIDATES")
	}
	cfg.Candidates = splitList(candidates)
	if cfg.CandidatesFile == "" {
		cfg.CandidatesFile = os.Getenv("CANDIDATES_FILE")
	}
	if !cfg.Debug {
		cfg.Debug, _ = strconv.ParseBool(os.Getenv("DEBUG"))
	}

	if cfg.LogSalt == "" {
		cfg.LogSalt = os.Getenv("LOG_SALT")
	}
	if cfg.LogSalt == "" {
		salt, err := auth.GenerateID(16)
		if err != nil {
			return Config{}, err
		}
		cfg.LogSalt = salt
	}

	// Backend-specific requirements
	switch cfg.Ledger {
	case LedgerEthereum:
		if cfg.ContractAddress == "" {
			return Config{}, errors.New("contract address required (use --contract or CONTRACT_ADDRESS env)")
		}
	case LedgerPostgres, LedgerSQLite:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case LedgerMemory:
	default:
		return Config{}, fmt.Errorf("unknown ledger backend %q", cfg.Ledger)
	}

	return cfg, nil
}

// ResolveCandidates returns the candidates from CandidatesFile, then
// Candidates, then DefaultCandidates.
func (c Config) ResolveCandidates() ([]string, error) {
	if c.CandidatesFile != "" {
		return LoadCandidatesFile(c.CandidatesFile)
	}
	if len(c.Candidates) > 0 {
		return c.Candidates, nil
	}
	return DefaultCandidates, nil
}

type candidatesFile struct {
	Candidates []string `yaml:"candidates"`
}

// LoadCandidatesFile reads a YAML document of the form
//
//	candidates:
//	  - Alice
//	  - Bob
func LoadCandidatesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read candidates file: %w", err)
	}
	var f candidatesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse candidates file: %w", err)
	}
	if len(f.Candidates) == 0 {
		return nil, fmt.Errorf("candidates file %s lists no candidates", path)
	}
	return f.Candidates, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
