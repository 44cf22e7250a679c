package common

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"vincit.fi/similar-images/api/apitype"
	"vincit.fi/similar-images/common/logger"
)

const EnvPrefix = "SIMILAR_IMAGES"

var (
	ErrMissingPath      = errors.New("path cannot be empty")
	ErrInvalidThreshold = errors.New("threshold must be between 0 and hashSize*hashSize")
	ErrInvalidThreads   = errors.New("threads cannot be negative")
	ErrInvalidLogLevel  = errors.New("logLevel must be ERROR, WARN, INFO, DEBUG or TRACE")
)

// environment holds the defaults read from SIMILAR_IMAGES_* variables.
type environment struct {
	Path        string `envconfig:"PATH"`
	Threshold   int    `envconfig:"THRESHOLD" default:"20"`
	ImageSize   int    `envconfig:"IMAGE_SIZE" default:"32"`
	HashSize    int    `envconfig:"HASH_SIZE" default:"8"`
	Threads     int    `envconfig:"THREADS" default:"0"` // 0 means one per CPU
	Resampler   string `envconfig:"RESAMPLER" default:"lanczos"`
	ExifRotate  bool   `envconfig:"EXIF_ROTATE" default:"false"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"INFO"`
	Db          string `envconfig:"DB"`
	MetricsFile string `envconfig:"METRICS_FILE"`
	Verbose     bool   `envconfig:"VERBOSE" default:"false"`
}

type Params struct {
	rootPath    string
	threshold   int
	imageSize   int
	hashSize    int
	threads     int
	resampler   string
	exifRotate  bool
	logLevel    string
	dbFile      string
	metricsFile string
	verbose     bool
}

func NewEmptyParams() *Params {
	return &Params{
		threshold: 20,
		imageSize: apitype.DefaultImageSize,
		hashSize:  apitype.DefaultHashSize,
		resampler: "lanczos",
		logLevel:  "INFO",
	}
}

// LoadEnvFile loads variables from file into the process environment
// without overriding already set ones. A missing file is not an error.
func LoadEnvFile(file string) error {
	if err := godotenv.Load(file); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", file, err)
	}
	logger.Debug.Printf("Loaded environment from %s", file)
	return nil
}

// ParseParams reads defaults from the environment and then applies the
// command line arguments on top of them. The first positional argument is
// accepted as the path when -path is not given.
func ParseParams(name string, args []string, output io.Writer) (*Params, error) {
	var env environment
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(output)

	params := &Params{}
	flags.StringVar(&params.rootPath, "path", env.Path, "Directory of images to compare")
	flags.StringVar(&params.rootPath, "p", env.Path, "Shorthand for -path")
	flags.IntVar(&params.threshold, "threshold", env.Threshold, "Pairs with Hamming distance strictly below this are similar")
	flags.IntVar(&params.imageSize, "imageSize", env.ImageSize, "Side of the square the image is resized to before the DCT")
	flags.IntVar(&params.hashSize, "hashSize", env.HashSize, "Side of the low frequency block. Hash has hashSize*hashSize bits")
	flags.IntVar(&params.threads, "threads", env.Threads, "Worker count. 0 uses one worker per CPU")
	flags.StringVar(&params.resampler, "resampler", env.Resampler, "Resize filter: lanczos, box, linear, catmullrom, nfnt-lanczos, nfnt-bicubic")
	flags.BoolVar(&params.exifRotate, "exifRotate", env.ExifRotate, "Rotate JPEG images according to EXIF orientation before hashing")
	flags.StringVar(&params.logLevel, "logLevel", env.LogLevel, "Log level: ERROR, WARN, INFO, DEBUG, TRACE")
	flags.StringVar(&params.dbFile, "db", env.Db, "Export the result into this SQLite file")
	flags.StringVar(&params.metricsFile, "metricsFile", env.MetricsFile, "Write Prometheus metrics in text format into this file")
	flags.BoolVar(&params.verbose, "verbose", env.Verbose, "Print the similar images of every image with distances")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}
	if params.rootPath == "" {
		params.rootPath = flags.Arg(0)
	}

	return params, nil
}

func (s *Params) Validate() error {
	if s.rootPath == "" {
		return ErrMissingPath
	}
	if err := s.HashConfig().Validate(); err != nil {
		return err
	}
	if s.threshold < 0 || s.threshold > s.HashConfig().Bits() {
		return ErrInvalidThreshold
	}
	if s.threads < 0 {
		return ErrInvalidThreads
	}
	if !logger.IsValidLogLevel(s.logLevel) {
		return ErrInvalidLogLevel
	}
	return nil
}

func (s *Params) RootPath() string {
	return s.rootPath
}

func (s *Params) Threshold() int {
	return s.threshold
}

func (s *Params) HashConfig() apitype.HashConfig {
	return apitype.HashConfig{ImageSize: s.imageSize, HashSize: s.hashSize}
}

// ThreadCount resolves the automatic worker count.
func (s *Params) ThreadCount() int {
	if s.threads == 0 {
		return runtime.NumCPU()
	}
	return s.threads
}

func (s *Params) Resampler() string {
	return s.resampler
}

func (s *Params) ExifRotate() bool {
	return s.exifRotate
}

func (s *Params) LogLevel() string {
	return s.logLevel
}

func (s *Params) DbFile() string {
	return s.dbFile
}

func (s *Params) MetricsFile() string {
	return s.metricsFile
}

func (s *Params) Verbose() bool {
	return s.verbose
}
