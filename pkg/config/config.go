package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Cart          CartConfig
	Payment       PaymentConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Cart.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PARTSDEPOT_APP_ENV" required:"true"`
	Port         string `envconfig:"PARTSDEPOT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PARTSDEPOT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PARTSDEPOT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"PARTSDEPOT_DB_DSN"`
	Driver string `envconfig:"PARTSDEPOT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PARTSDEPOT_DB_HOST"`
	LegacyPort     int    `envconfig:"PARTSDEPOT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PARTSDEPOT_DB_USER"`
	LegacyPassword string `envconfig:"PARTSDEPOT_DB_PASSWORD"`
	LegacyName     string `envconfig:"PARTSDEPOT_DB_NAME"`
	LegacySSLMode  string `envconfig:"PARTSDEPOT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PARTSDEPOT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PARTSDEPOT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PARTSDEPOT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PARTSDEPOT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PARTSDEPOT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PARTSDEPOT_REDIS_ADDR"`
	Password     string        `envconfig:"PARTSDEPOT_REDIS_PASSWORD"`
	DB           int           `envconfig:"PARTSDEPOT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PARTSDEPOT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PARTSDEPOT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PARTSDEPOT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PARTSDEPOT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PARTSDEPOT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"PARTSDEPOT_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"PARTSDEPOT_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"PARTSDEPOT_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"PARTSDEPOT_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"PARTSDEPOT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"PARTSDEPOT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"PARTSDEPOT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"PARTSDEPOT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"PARTSDEPOT_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"PARTSDEPOT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"PARTSDEPOT_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"PARTSDEPOT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"PARTSDEPOT_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"PARTSDEPOT_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"PARTSDEPOT_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PARTSDEPOT_AUTO_MIGRATE" default:"false"`
}

// CartConfig carries the storefront pricing knobs. Values arrive as strings so
// they can be parsed into exact decimals rather than binary floats.
type CartConfig struct {
	TaxRate            string `envconfig:"PARTSDEPOT_CART_TAX_RATE" default:"0.08"`
	ShippingFee        string `envconfig:"PARTSDEPOT_CART_SHIPPING_FEE" default:"9.99"`
	FreeShippingMin    string `envconfig:"PARTSDEPOT_CART_FREE_SHIPPING_MIN" default:"75"`
	MaxQuantityPerLine int    `envconfig:"PARTSDEPOT_CART_MAX_QTY_PER_LINE" default:"99"`
}

func (c CartConfig) validate() error {
	for name, raw := range map[string]string{
		"tax rate":          c.TaxRate,
		"shipping fee":      c.ShippingFee,
		"free shipping min": c.FreeShippingMin,
	} {
		if _, err := decimal.NewFromString(raw); err != nil {
			return fmt.Errorf("invalid cart %s %q: %w", name, raw, err)
		}
	}
	if c.MaxQuantityPerLine < 1 {
		return fmt.Errorf("cart max quantity per line must be positive")
	}
	return nil
}

// TaxRateDecimal returns the parsed tax rate. validate() runs at Load time, so
// the parse cannot fail afterwards.
func (c CartConfig) TaxRateDecimal() decimal.Decimal {
	d, _ := decimal.NewFromString(c.TaxRate)
	return d
}

func (c CartConfig) ShippingFeeDecimal() decimal.Decimal {
	d, _ := decimal.NewFromString(c.ShippingFee)
	return d
}

func (c CartConfig) FreeShippingMinDecimal() decimal.Decimal {
	d, _ := decimal.NewFromString(c.FreeShippingMin)
	return d
}

type PaymentConfig struct {
	RedirectBaseURL string `envconfig:"PARTSDEPOT_PAYMENT_REDIRECT_BASE_URL" default:"https://pay.partsdepot.example/checkout"`
	CallbackSecret  string `envconfig:"PARTSDEPOT_PAYMENT_CALLBACK_SECRET" required:"true"`
	MerchantCode    string `envconfig:"PARTSDEPOT_PAYMENT_MERCHANT_CODE" default:"partsdepot"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
