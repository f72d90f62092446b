// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration for
both the API server and the terminal client.

Both parsers first load a .env file from the working directory (if present)
with godotenv. Variables already in the environment win over the file, and CLI
flags win over both.

# Server

	cfg, err := cliparse.ParseFlags(os.Args[1:])

	-p            PORT           Server port (default: 3318)
	-d            DATABASE_URL   Database URL (default: versus.db for sqlite)
	-t            DATABASE_TYPE  sqlite or postgres (default: sqlite)
	--cors-origin CORS_ORIGIN    Allowed origin (default: *, no credentials)
	--ip-salt     IP_HASH_SALT   Salt for hashing voter IPs (required)

# Client

	cfg, err := cliparse.ParseClientFlags(os.Args[1:])

	-u        BACKEND_URL      Backend base URL (default: http://localhost:3318)
	--timeout REQUEST_TIMEOUT  Per-request timeout (default: 10s)
	--min-id  MIN_QUESTION_ID  Smallest question id drawn (default: 1)
	--max-id  MAX_QUESTION_ID  Largest question id drawn (default: 10)
	--log     LOG_FILE         Diagnostic log file (default: versus.log)

# Validation

  - postgres requires a database URL
  - IP_HASH_SALT must be provided to the server
  - the question id range must satisfy 1 <= min <= max
*/
package cliparse
