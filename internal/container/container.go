// Package container provides dependency injection for the bank-insights
// application. It centralizes the creation and wiring of all application
// dependencies, making them explicit and testable.
package container

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"fjacquet/bank-insights/internal/analysis"
	"fjacquet/bank-insights/internal/batch"
	"fjacquet/bank-insights/internal/config"
	"fjacquet/bank-insights/internal/csvparser"
	"fjacquet/bank-insights/internal/fileutils"
	"fjacquet/bank-insights/internal/logging"
	"fjacquet/bank-insights/internal/market"
	"fjacquet/bank-insights/internal/models"
	"fjacquet/bank-insights/internal/parser"
	"fjacquet/bank-insights/internal/report"
	"fjacquet/bank-insights/internal/store"
	"fjacquet/bank-insights/internal/views"
	"fjacquet/bank-insights/internal/xlsxparser"

	"github.com/shopspring/decimal"
)

// Container holds all application dependencies and provides methods to
// access them.
//
// Container is immutable after creation - all fields are private and can
// only be accessed through getter methods.
type Container struct {
	logger   logging.Logger
	logFile  *os.File
	config   *config.Config
	analyzer *analysis.Analyzer
	writer   *report.Writer
	settings *store.SettingsStore
	market   market.Provider
	home     *views.HomePage
	batch    *batch.Aggregator

	parsers map[parser.Format]parser.FullParser
}

// NewContainer creates and wires all application dependencies, logging
// through a logrus logger configured from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}

	logrusLogger := config.ConfigureLoggingFromConfig(cfg)
	var logFile *os.File
	if cfg.Log.File != "" {
		if err := fileutils.EnsureDirectoryExists(filepath.Dir(cfg.Log.File)); err != nil {
			return nil, fmt.Errorf("failed to prepare log directory: %w", err)
		}
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		logrusLogger.SetOutput(f)
		logFile = f
	}

	c, err := NewContainerWithLogger(cfg, logging.NewLogrusAdapterFromLogger(logrusLogger))
	if err != nil {
		if logFile != nil {
			_ = logFile.Close()
		}
		return nil, err
	}
	c.logFile = logFile
	return c, nil
}

// NewContainerWithLogger is like NewContainer but uses the given logger.
func NewContainerWithLogger(cfg *config.Config, logger logging.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}

	delimiter := csvparser.DefaultDelimiter
	if runes := []rune(cfg.Input.CSVDelimiter); len(runes) == 1 {
		delimiter = runes[0]
	}

	parsers := map[parser.Format]parser.FullParser{
		parser.XLSX: xlsxparser.NewAdapter(logger, cfg.Input.Sheet),
		parser.CSV:  csvparser.NewAdapter(logger, delimiter, cfg.Input.Encoding),
	}

	analyzer := analysis.NewAnalyzer(logger, AnalysisOptions(cfg))
	settings := store.NewSettingsStore(cfg.Settings.File, logger)
	timeout := time.Duration(cfg.Market.TimeoutSeconds) * time.Second
	marketClient := market.NewClient(market.Options{
		CurrencyURL:       cfg.Market.CurrencyURL,
		StockURL:          cfg.Market.StockURL,
		APIKey:            cfg.Market.APIKey,
		BaseCurrency:      cfg.Market.BaseCurrency,
		Timeout:           timeout,
		RequestsPerMinute: cfg.Market.RequestsPerMinute,
	}, logger)

	logger.Debug("Container initialized",
		logging.F("parsers_count", len(parsers)),
		logging.F("market_api_key_set", cfg.Market.APIKey != ""))

	return &Container{
		logger:   logger,
		config:   cfg,
		analyzer: analyzer,
		writer:   report.NewWriter(logger, cfg.Report.Directory),
		settings: settings,
		market:   marketClient,
		home:     views.NewHomePage(analyzer, settings, marketClient, timeout, logger),
		batch:    batch.NewAggregator(logger),
		parsers:  parsers,
	}, nil
}

// AnalysisOptions maps the analysis section of cfg onto analyzer options.
// Zero values keep the defaults.
func AnalysisOptions(cfg *config.Config) analysis.Options {
	opts := analysis.DefaultOptions()
	if cfg.Analysis.WindowDays > 0 {
		opts.WindowDays = cfg.Analysis.WindowDays
	}
	if cfg.Analysis.CashbackRate > 0 {
		opts.CashbackRate = decimal.NewFromFloat(cfg.Analysis.CashbackRate)
	}
	if cfg.Analysis.TransferCategory != "" {
		opts.TransferCategory = cfg.Analysis.TransferCategory
	}
	if cfg.Analysis.CashCategory != "" {
		opts.CashCategory = cfg.Analysis.CashCategory
	}
	if cfg.Analysis.TopCategories > 0 {
		opts.TopCategories = cfg.Analysis.TopCategories
	}
	if cfg.Analysis.OtherLabel != "" {
		opts.OtherLabel = cfg.Analysis.OtherLabel
	}
	return opts
}

// GetParser returns the parser for the given input format.
func (c *Container) GetParser(format parser.Format) (parser.FullParser, error) {
	p, ok := c.parsers[format]
	if !ok {
		return nil, fmt.Errorf("unknown parser type: %s", format)
	}
	return p, nil
}

// GetParsers returns a copy of the parser registry.
func (c *Container) GetParsers() map[parser.Format]parser.FullParser {
	result := make(map[parser.Format]parser.FullParser, len(c.parsers))
	for k, v := range c.parsers {
		result[k] = v
	}
	return result
}

// LoadTable reads the transaction table at path with the parser matching
// its extension. A directory is read file by file and merged. Failures are
// logged and give an empty table.
func (c *Container) LoadTable(path string) *models.Table {
	log := c.logger.WithField(logging.FieldFile, path)

	if fileutils.DirectoryExists(path) {
		table, err := c.batch.LoadDirectory(path, c.parseFile)
		if err != nil {
			log.WithError(err).Error("Failed to read transaction directory")
			return models.NewTable(nil, nil)
		}
		return table
	}

	table, err := c.parseFile(path)
	if err != nil {
		log.WithError(err).Error("Failed to read transaction table")
		return models.NewTable(nil, nil)
	}
	return table
}

func (c *Container) parseFile(path string) (*models.Table, error) {
	format, err := parser.DetectFormat(path)
	if err != nil {
		return nil, err
	}
	p, err := c.GetParser(format)
	if err != nil {
		return nil, err
	}
	return p.ParseFile(path)
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// GetAnalyzer returns the query engine.
func (c *Container) GetAnalyzer() *analysis.Analyzer {
	return c.analyzer
}

// GetReportWriter returns the JSON report writer.
func (c *Container) GetReportWriter() *report.Writer {
	return c.writer
}

// GetSettingsStore returns the user settings store.
func (c *Container) GetSettingsStore() *store.SettingsStore {
	return c.settings
}

// GetMarket returns the market data provider.
func (c *Container) GetMarket() market.Provider {
	return c.market
}

// GetHomePage returns the home page builder.
func (c *Container) GetHomePage() *views.HomePage {
	return c.home
}

// Close releases the log file, if any.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	if c.logFile != nil {
		err := c.logFile.Close()
		c.logFile = nil
		return err
	}
	return nil
}
