// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles configuration from CLI flags, environment
variables and an optional .env file.

# Precedence

Configuration is resolved in this order:

 1. CLI flags (highest priority)
 2. Environment variables
 3. .env in the working directory (never overrides the environment)
 4. Default values

# Configuration Options

	Flag        Env             Default     Description
	-p          PORT            3318        HTTP server port
	-catalog    CATALOG_PATH    built in    Dataset catalog YAML
	-data-dir   DATA_DIR        built in    Dataset JSON directory
	-d          DATABASE_URL    (none)      Database for sql sources
	-t          DATABASE_TYPE   sqlite      sqlite or postgres
	-locale     LOCALE          en-IN       Number grouping locale
	-log-level  LOG_LEVEL       info        debug, info, warn, error

# Usage

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

Nothing is required: with no configuration the server runs on the built
in catalog and data.
*/
package cliparse
