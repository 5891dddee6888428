package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Jakes-stx/AstraVault/internal/core/application"
	"github.com/Jakes-stx/AstraVault/internal/core/ports"
	"github.com/Jakes-stx/AstraVault/internal/infrastructure/db"
	"github.com/Jakes-stx/AstraVault/internal/infrastructure/ledger"
	"github.com/Jakes-stx/AstraVault/internal/infrastructure/tick"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type supportedType map[string]struct{}

func (t supportedType) String() string {
	types := make([]string, 0, len(t))
	for tt := range t {
		types = append(types, tt)
	}
	return strings.Join(types, " | ")
}

func (t supportedType) supports(typeStr string) bool {
	_, ok := t[typeStr]
	return ok
}

var (
	supportedDbs = supportedType{
		"badger": {},
	}
	supportedTickSources = supportedType{
		"manual": {},
		"system": {},
	}
	supportedClaimModes = supportedType{
		string(application.ClaimModeMulti):  {},
		string(application.ClaimModeLegacy): {},
	}
)

type Config struct {
	Datadir      string
	Port         uint32
	LogLevel     int
	DbType       string
	DbDir        string
	ClaimMode    string
	TickSource   string
	TickInterval int64 // seconds, system tick source
	TickStart    uint64

	repo        ports.RepoManager
	svc         application.Service
	ledgerSvc   *ledger.CustodyLedger
	manualTicks *tick.Manual
	ticks       ports.TickSource
}

var (
	DefaultPort         = 7465
	defaultLogLevel     = 4
	defaultDbType       = "badger"
	defaultClaimMode    = string(application.ClaimModeMulti)
	defaultTickSource   = "system"
	defaultTickInterval = 600 // one tick per block, ~10 minutes
)

const (
	datadirKey      = "DATADIR"
	portKey         = "PORT"
	logLevelKey     = "LOG_LEVEL"
	dbTypeKey       = "DB_TYPE"
	claimModeKey    = "CLAIM_MODE"
	tickSourceKey   = "TICK_SOURCE"
	tickIntervalKey = "TICK_INTERVAL"
	tickStartKey    = "TICK_START"
)

func defaultDatadir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".astravault"
	}
	return filepath.Join(home, ".astravault")
}

func LoadConfig() (*Config, error) {
	viper.SetEnvPrefix("ASTRAVAULT")
	viper.AutomaticEnv()

	viper.SetDefault(datadirKey, defaultDatadir())
	viper.SetDefault(portKey, DefaultPort)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(dbTypeKey, defaultDbType)
	viper.SetDefault(claimModeKey, defaultClaimMode)
	viper.SetDefault(tickSourceKey, defaultTickSource)
	viper.SetDefault(tickIntervalKey, defaultTickInterval)
	viper.SetDefault(tickStartKey, 0)

	datadir := viper.GetString(datadirKey)
	if err := makeDirectoryIfNotExists(datadir); err != nil {
		return nil, fmt.Errorf("failed to create datadir: %s", err)
	}

	cfg := &Config{
		Datadir:      datadir,
		Port:         viper.GetUint32(portKey),
		LogLevel:     viper.GetInt(logLevelKey),
		DbType:       viper.GetString(dbTypeKey),
		DbDir:        filepath.Join(datadir, "db"),
		ClaimMode:    viper.GetString(claimModeKey),
		TickSource:   viper.GetString(tickSourceKey),
		TickInterval: viper.GetInt64(tickIntervalKey),
		TickStart:    viper.GetUint64(tickStartKey),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if !supportedDbs.supports(c.DbType) {
		return fmt.Errorf("db type not supported, please select one of: %s", supportedDbs)
	}
	if !supportedTickSources.supports(c.TickSource) {
		return fmt.Errorf(
			"tick source not supported, please select one of: %s", supportedTickSources,
		)
	}
	if !supportedClaimModes.supports(c.ClaimMode) {
		return fmt.Errorf(
			"claim mode not supported, please select one of: %s", supportedClaimModes,
		)
	}
	if c.TickSource == "system" && c.TickInterval <= 0 {
		return fmt.Errorf("tick interval must be positive")
	}
	return nil
}

// AppService assembles (once) and returns the vault application service.
func (c *Config) AppService() (application.Service, error) {
	if c.svc == nil {
		if err := c.appService(); err != nil {
			return nil, err
		}
	}
	return c.svc, nil
}

// Ledger returns the in-process custody ledger backing native transfers.
func (c *Config) Ledger() *ledger.CustodyLedger {
	if c.ledgerSvc == nil {
		c.ledgerSvc = ledger.NewCustodyLedger()
	}
	return c.ledgerSvc
}

// ManualTicks returns the manual tick source, nil unless TICK_SOURCE is
// set to manual.
func (c *Config) ManualTicks() *tick.Manual {
	return c.manualTicks
}

func (c *Config) RepoManager() (ports.RepoManager, error) {
	if c.repo == nil {
		if err := c.repoManager(); err != nil {
			return nil, err
		}
	}
	return c.repo, nil
}

func (c *Config) repoManager() error {
	var dataStoreConfig []interface{}
	logger := log.New()

	switch c.DbType {
	case "badger":
		dataStoreConfig = []interface{}{c.DbDir, logger}
	default:
		return fmt.Errorf("unknown db type")
	}

	svc, err := db.NewService(db.ServiceConfig{
		DataStoreType:   c.DbType,
		DataStoreConfig: dataStoreConfig,
	})
	if err != nil {
		return err
	}

	c.repo = svc
	return nil
}

func (c *Config) tickSource() error {
	switch c.TickSource {
	case "manual":
		c.manualTicks = tick.NewManual(c.TickStart)
		c.ticks = c.manualTicks
	case "system":
		source, err := tick.NewSystem(time.Duration(c.TickInterval) * time.Second)
		if err != nil {
			return err
		}
		c.ticks = source
	default:
		return fmt.Errorf("unknown tick source")
	}
	return nil
}

func (c *Config) appService() error {
	repo, err := c.RepoManager()
	if err != nil {
		return err
	}
	if c.ticks == nil {
		if err := c.tickSource(); err != nil {
			return err
		}
	}

	svc, err := application.NewService(
		repo, c.Ledger(), c.ticks, application.ClaimMode(c.ClaimMode),
	)
	if err != nil {
		return err
	}

	c.svc = svc
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
