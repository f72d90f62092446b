// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package ident generates identifiers and privacy-preserving hashes.

# ID Generation

Random hex IDs:

	id, err := ident.GenerateID(16)  // 32 hex characters

Short base62 IDs for chat records:

	msgID, err := ident.ShortID("m")
	replyID, err := ident.ShortID("r")

# IP Hashing

Votes record a salted hash of the client IP, never the IP itself:

	hash := ident.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package ident
