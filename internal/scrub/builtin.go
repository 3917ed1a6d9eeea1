package scrub

import "regexp"

// builtin constructs a built-in pattern. Built-in regexes are compiled once
// at package init via MustCompile; a bad expression is a programming error.
func builtin(name string, cat Category, priority int, expr, replacement string, hints ...string) Pattern {
	p := Pattern{
		Name:          name,
		Category:      cat,
		Regex:         regexp.MustCompile(expr),
		Replacement:   replacement,
		Priority:      priority,
		CaseSensitive: true,
		Hints:         hints,
	}
	return p
}

// builtinFold is builtin for case-insensitive patterns. The expression must
// carry its own (?i) flag; the flag here only routes hint checks through the
// lowercase copy of the text.
func builtinFold(name string, cat Category, priority int, expr, replacement string, hints ...string) Pattern {
	p := builtin(name, cat, priority, expr, replacement, hints...)
	p.CaseSensitive = false
	normalizeHints(&p)
	return p
}

// builtinPatterns is the default detection table, in priority order.
//
// Priority bands:
//
//	 0-9   structural secrets (private keys, PEM blocks)
//	10-29  keyed credentials (cloud keys, API keys, tokens, auth headers)
//	30-39  generic secret assignments
//	40-44  environment variable lines
//	45-54  network identifiers (plus SCP-style git remotes, see git_ssh_remote)
//	55-64  personal data
//	65     opaque identifiers
//	70-74  filesystem paths
//	75-79  encoded blobs
//	80-84  VCS remote URLs
//	85+    inline code-literal secrets
//
// Replacement tokens deliberately contain no digits, no "@" and no "://" so
// that later, broader patterns can never re-match an earlier redaction.
var builtinPatterns = []Pattern{
	// Structural secrets. The private-key rule runs before the generic PEM
	// rule so key material gets the more informative token.
	builtin("private_key", CategoryCredentials, 0,
		`(?s)-----BEGIN [A-Z ]*PRIVATE KEY-----.*?-----END [A-Z ]*PRIVATE KEY-----`,
		"[PRIVATE_KEY]", "PRIVATE KEY"),
	builtin("pem_block", CategoryCredentials, 2,
		`(?s)-----BEGIN [A-Z][A-Z ]*-----.*?-----END [A-Z][A-Z ]*-----`,
		"[PEM_BLOCK]", "-----BEGIN"),

	// Keyed credentials.
	builtin("aws_access_key", CategoryAuth, 10,
		`\bAKIA[0-9A-Z]{16}\b`,
		"[AWS_ACCESS_KEY]", "AKIA"),
	builtinFold("aws_secret_key", CategoryAuth, 11,
		`(?i)\b(aws_secret_access_key|secret_access_key)\s*[=:]\s*[A-Za-z0-9/+=]{30,}`,
		"$1=[AWS_SECRET]", "secret_access_key"),
	builtin("api_key", CategoryAuth, 12,
		`\bsk-[A-Za-z0-9_-]{20,}`,
		"[REDACTED_KEY]", "sk-"),
	builtin("github_token", CategoryAuth, 13,
		`\bgh[pousr]_[A-Za-z0-9]{36}\b`,
		"[GITHUB_TOKEN]", "ghp_", "gho_", "ghu_", "ghs_", "ghr_"),
	builtin("google_api_key", CategoryAuth, 14,
		`\bAIza[0-9A-Za-z_-]{35}`,
		"[GOOGLE_API_KEY]", "AIza"),
	builtin("slack_token", CategoryAuth, 15,
		`\bxox[baprs]-[0-9a-zA-Z-]{10,}`,
		"[SLACK_TOKEN]", "xox"),
	builtin("stripe_key", CategoryAuth, 16,
		`\b[rs]k_live_[0-9a-zA-Z]{24,}`,
		"[STRIPE_KEY]", "_live_"),
	builtin("rotation_token", CategoryAuth, 17,
		`\btok_[A-Za-z0-9]{20,}\b`,
		"[ROTATION_TOKEN]", "tok_"),
	builtin("jwt", CategoryAuth, 20,
		`\beyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`,
		"[JWT]", "eyJ"),
	builtinFold("bearer_token", CategoryAuth, 21,
		`(?i)\bbearer\s+[A-Za-z0-9._~+/-]{16,}=*`,
		"Bearer [TOKEN]", "bearer"),
	builtinFold("basic_auth", CategoryAuth, 22,
		`(?i)\bbasic\s+[A-Za-z0-9+/=]{16,}`,
		"Basic [CREDENTIALS]", "basic"),

	// Generic secret assignments. Values that start with "[" are excluded
	// so earlier redaction tokens are never consumed.
	builtinFold("password_assignment", CategorySecrets, 30,
		`(?i)\b(password|passwd|pwd)\s*[=:]=?\s*[^\s"'\[\]]{6,}`,
		"$1=[REDACTED]", "password", "passwd", "pwd"),
	builtinFold("secret_assignment", CategorySecrets, 31,
		`(?i)\b([A-Za-z0-9_.-]*(?:key|token|secret|passphrase))\s*[=:]=?\s*[^\s"'\[\]]{8,}`,
		"$1=[REDACTED]", "key", "token", "secret", "passphrase"),

	// Environment variable lines. Catches credential-named variables whose
	// value was too short or whose name too unusual for the bands above.
	builtin("env_credential_line", CategoryEnv, 40,
		`(?m)^(export\s+)?([A-Z0-9_]*(?:KEY|TOKEN|SECRET|PASSWORD|PASS|CREDENTIALS?))=[^\s\[\]]+$`,
		"$1$2=[REDACTED]", "KEY", "TOKEN", "SECRET", "PASS", "CRED"),

	// Network identifiers. MAC addresses run before IPv6 because a MAC is
	// also a valid 6-group IPv6 shape and would otherwise be tagged [IP_ADDR].
	builtin("connection_string", CategoryNetwork, 45,
		`\b[a-zA-Z][a-zA-Z0-9+.-]*://[^\s/@:]+:[^\s@]+@[^\s]+`,
		"[CONNECTION_STRING]", "://"),
	builtin("mac_address", CategoryNetwork, 46,
		`\b(?:[0-9A-Fa-f]{2}:){5}[0-9A-Fa-f]{2}\b`,
		"[MAC_ADDR]", ":"),
	builtin("ipv4_address", CategoryNetwork, 47,
		`\b\d{1,3}(?:\.\d{1,3}){3}\b`,
		"[IP_ADDR]", "."),
	builtin("ipv6_address", CategoryNetwork, 48,
		`\b[0-9a-fA-F]{1,4}(?::[0-9a-fA-F]{1,4}){4,7}\b`,
		"[IP_ADDR]", ":"),

	// SCP-style git remotes sit in the network band, ahead of the email
	// rule, so git@host:org/repo.git is tagged [GIT_REMOTE] rather than
	// having its user@host prefix eaten as an email address.
	builtin("git_ssh_remote", CategoryGit, 50,
		`\bgit@[A-Za-z0-9._-]+:[A-Za-z0-9._~/-]+`,
		"[GIT_REMOTE]", "git@"),

	// Personal data.
	builtin("email_address", CategoryPersonal, 56,
		`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`,
		"[EMAIL]", "@"),
	builtin("ssn", CategoryPersonal, 57,
		`\b\d{3}-\d{2}-\d{4}\b`,
		"[SSN]", "-"),
	builtin("credit_card", CategoryPersonal, 58,
		`\b(?:\d{4}[ -]?){3}\d{4}\b`,
		"[CARD_NUMBER]"),
	// Phone numbers must carry separators; a bare digit run is left for the
	// card and blob rules so UUID tails and hashes are not mistagged.
	builtin("phone_number", CategoryPersonal, 59,
		`\b(?:\+?\d{1,2}[-. ])?\(?\d{3}\)?[-. ]\d{3}[-. ]\d{4}\b`,
		"[PHONE]"),

	// Opaque identifiers.
	builtin("uuid", CategoryIdentifiers, 65,
		`\b[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}\b`,
		"[UUID]", "-"),

	// Filesystem paths that embed a username.
	builtin("home_dir_unix", CategoryPaths, 70,
		`(?:/home|/Users)/[A-Za-z0-9._-]+`,
		"[HOME_DIR]", "/home/", "/Users/"),
	builtinFold("home_dir_windows", CategoryPaths, 71,
		`(?i)\b[A-Z]:\\Users\\[^\s\\]+`,
		"[HOME_DIR]", `users\`),

	// Encoded blobs. Hex before base64: a long hex string is also valid
	// base64 and should get the more specific token.
	builtin("hex_blob", CategoryIdentifiers, 75,
		`\b[0-9a-fA-F]{40,}\b`,
		"[HEX_BLOB]"),
	builtin("base64_blob", CategoryIdentifiers, 76,
		`\b[A-Za-z0-9+/]{40,}={0,2}`,
		"[ENCODED_BLOB]"),

	// HTTP(S) git remotes. Credentialed ones were already consumed by
	// connection_string.
	builtin("git_remote_url", CategoryGit, 80,
		`\bhttps?://[^\s]+\.git\b`,
		"[GIT_REMOTE]", ".git"),

	// Inline code literals: quoted strings assigned to secret-named
	// identifiers.
	builtinFold("code_literal_secret", CategoryCode, 85,
		`(?i)\b([A-Za-z_][A-Za-z0-9_]*(?:key|token|secret|password|passwd))\s*[=:]=?\s*["'][^"'\[\]]{6,}["']`,
		`$1="[REDACTED]"`, "key", "token", "secret", "password", "passwd"),
}

// BuiltinPatterns returns a copy of the built-in pattern table.
// A copy is returned to prevent callers from mutating the internal table.
func BuiltinPatterns() []Pattern {
	out := make([]Pattern, len(builtinPatterns))
	copy(out, builtinPatterns)
	return out
}
