package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
	"labgrade.dev/pkg/labgrade/internal/domain"
	"labgrade.dev/pkg/labgrade/internal/domain/labs"
)

const (
	configVersionKey     = "version"
	currentConfigVersion = 1

	configBaseName   = "labgrade"
	configFileName   = configBaseName + ".yaml"
	configFolderPath = "."
	envFileName      = ".env"

	outputFlagName   = "output"
	rubricFlagName   = "rubric"
	deadlineFlagName = "deadline"
	fallbackFlagName = "fallback"
	verboseFlagName  = "verbose"
	logFileFlagName  = "log-file"
	rosterFlagName   = "roster"
	parallelFlagName = "parallel"

	projectRootKey     = "project.root"
	labNameKey         = "lab.name"
	rubricFileKey      = "rubric.file"
	deadlineKey        = "submission.deadline"
	submissionMaxKey   = "submission.max"
	submissionLateKey  = "submission.late"
	fallbackKey        = "submission.fallback"
	gitTimeoutKey      = "git.timeout"
	watchDebounceKey   = "watch.debounce"
	summaryFileKey     = "summary.file"
	mergeRosterKey     = "merge.roster"
	mergeParallelKey   = "merge.parallel"
	summaryEnv         = "GITHUB_STEP_SUMMARY"
	summaryPrefixedEnv = envPrefix + "_SUMMARY_FILE"

	defaultOutputDir     = "artifacts"
	defaultProjectRoot   = "."
	defaultDeadline      = "2026-02-18T13:59:00+03:00"
	defaultSubmissionMax = 20.0
	defaultLateScore     = 10.0
	defaultGitTimeout    = "10s"
	defaultDebounce      = "500ms"
	defaultRoster        = "roster.csv"
	defaultParallel      = 4

	envPrefix = "LABGRADE"

	logFilenameKey   = "log.filename"
	logLevelKey      = "log.level"
	logVerboseKey    = "log.verbose"
	logMaxSizeKey    = "log.max_size"
	logMaxBackupsKey = "log.max_backups"
	logMaxAgeKey     = "log.max_age"
	logCompressKey   = "log.compress"

	defaultLogFilename   = ".labgrade.log"
	defaultLogLevel      = int(slog.LevelInfo)
	defaultLogVerbose    = false
	defaultLogMaxSize    = 10
	defaultLogMaxBackups = 3
	defaultLogMaxAge     = 28
	defaultLogCompress   = true
)

var globalLogger *slog.Logger

func init() {
	loadDotEnv(envFileName)

	viper.SetConfigName(configBaseName)
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configFolderPath)
	viper.SetConfigFile(filepath.Join(configFolderPath, configFileName))
	viper.AutomaticEnv()
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	_ = viper.BindEnv(summaryFileKey, summaryPrefixedEnv, summaryEnv)

	viper.SetDefault(configVersionKey, currentConfigVersion)
	viper.SetDefault(outputFlagName, defaultOutputDir)
	viper.SetDefault(projectRootKey, defaultProjectRoot)
	viper.SetDefault(labNameKey, labs.ReactStarterName)
	viper.SetDefault(rubricFileKey, "")
	viper.SetDefault(deadlineKey, defaultDeadline)
	viper.SetDefault(submissionMaxKey, defaultSubmissionMax)
	viper.SetDefault(submissionLateKey, defaultLateScore)
	viper.SetDefault(fallbackKey, string(domain.FallbackNow))
	viper.SetDefault(gitTimeoutKey, defaultGitTimeout)
	viper.SetDefault(watchDebounceKey, defaultDebounce)
	viper.SetDefault(mergeRosterKey, defaultRoster)
	viper.SetDefault(mergeParallelKey, defaultParallel)

	// Logging defaults (used by config/env and as fallbacks for flags).
	viper.SetDefault(logFilenameKey, defaultLogFilename)
	viper.SetDefault(logLevelKey, defaultLogLevel)
	viper.SetDefault(logVerboseKey, defaultLogVerbose)
	viper.SetDefault(logMaxSizeKey, defaultLogMaxSize)
	viper.SetDefault(logMaxBackupsKey, defaultLogMaxBackups)
	viper.SetDefault(logMaxAgeKey, defaultLogMaxAge)
	viper.SetDefault(logCompressKey, defaultLogCompress)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist) {
			return
		}

		fmt.Fprintf(os.Stderr, "labgrade: ignoring %s: %v\n", configFileName, err)
	}
}

// loadDotEnv exports the variables of an optional .env file. Variables that
// are already set win.
func loadDotEnv(path string) {
	err := godotenv.Load(path)
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return
	}

	fmt.Fprintf(os.Stderr, "labgrade: ignoring %s: %v\n", path, err)
}

func parseSlogLevel(value string, defaultLevel slog.Level) slog.Level {
	level := strings.ToLower(strings.TrimSpace(value))
	if level == "" {
		return defaultLevel
	}

	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}

	// Allow numeric slog levels as well (e.g. -4 for debug).
	if n, err := strconv.Atoi(level); err == nil {
		return slog.Level(n)
	}

	return defaultLevel
}

// configureLogger configures the global slog logger.
//
// By default it logs at Info; if verbose is true it logs at Debug.
func configureLogger(logPath string, verbose bool) {
	logPath = resolveLogPath(logPath)

	var logLevel slog.Level
	if verbose {
		logLevel = slog.LevelDebug
	} else {
		logLevel = parseSlogLevel(viper.GetString(logLevelKey), slog.LevelInfo)
	}

	logWriter := &lumberjack.Logger{
		Filename:   logPath,
		MaxSize:    viper.GetInt(logMaxSizeKey),
		MaxBackups: viper.GetInt(logMaxBackupsKey),
		MaxAge:     viper.GetInt(logMaxAgeKey),
		Compress:   viper.GetBool(logCompressKey),
	}

	handler := slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		AddSource: true,
		Level:     logLevel,
	})

	globalLogger = slog.New(handler)
	slog.SetDefault(globalLogger)
}

// resolveLogPath falls back to the configured and then the default log file.
func resolveLogPath(logPath string) string {
	if strings.TrimSpace(logPath) == "" {
		logPath = viper.GetString(logFilenameKey)
	}

	if strings.TrimSpace(logPath) == "" {
		logPath = defaultLogFilename
	}

	return logPath
}
