package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-c/-config json file path with configs
//	-image-domains comma-separated legacy allowlist of literal hostnames
//	-min-cache-ttl cache entry TTL floor (e.g., "60s", "5m")
//	-cache-index sqlite cache index file path
//	-cache-dir image blob directory
//	-sweep-interval cache sweeper period (e.g., "10m")
//	-request-timeout upstream fetch timeout (e.g., "30s", "1m")
//	-ignore-type-errors demote config type check failures to warnings
//	-ignore-lint-errors demote config lint failures to warnings
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var jsonConfigPath string
	var imageDomains string
	var minCacheTTL time.Duration
	var cacheIndexPath string
	var cacheDir string
	var sweepInterval time.Duration
	var requestTimeout time.Duration
	var ignoreTypeErrors bool
	var ignoreLintErrors bool

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&imageDomains, "image-domains", "", "Comma-separated legacy image domains")
	flag.DurationVar(&minCacheTTL, "min-cache-ttl", 0, "Minimum cache TTL (e.g., 60s, 5m)")
	flag.StringVar(&cacheIndexPath, "cache-index", "", "SQLite cache index file path")
	flag.StringVar(&cacheDir, "cache-dir", "", "Image blob directory")
	flag.DurationVar(&sweepInterval, "sweep-interval", 0, "Cache sweep interval (e.g., 10m)")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Upstream request timeout (e.g., 30s, 1m)")
	flag.BoolVar(&ignoreTypeErrors, "ignore-type-errors", false, "Demote config type check failures to warnings")
	flag.BoolVar(&ignoreLintErrors, "ignore-lint-errors", false, "Demote config lint failures to warnings")

	flag.Parse()

	return &StructuredConfig{
		Build: Build{
			IgnoreTypeErrors: ignoreTypeErrors,
			IgnoreLintErrors: ignoreLintErrors,
		},
		Images: Images{
			Domains:         splitDomains(imageDomains),
			MinimumCacheTTL: minCacheTTL,
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Storage: Storage{
			DB: DB{
				Path: cacheIndexPath,
			},
			Files: Files{
				CacheDir: cacheDir,
			},
		},
		Workers: Workers{
			SweepInterval: sweepInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// splitDomains splits a comma-separated domain list, trimming whitespace and
// dropping empty entries. Returns nil for an empty input so the field stays
// zero-valued and does not shadow other sources during merge.
func splitDomains(s string) []string {
	if s == "" {
		return nil
	}

	var domains []string
	for _, d := range strings.Split(s, ",") {
		if d = strings.TrimSpace(d); d != "" {
			domains = append(domains, d)
		}
	}

	return domains
}

// String returns a canonical host:port string for a NetAddress.
// If neither Host nor Port are set, it returns an empty string.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
