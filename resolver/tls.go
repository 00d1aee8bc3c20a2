package resolver

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Grupo-MACC/entrypoint/config"
	"github.com/Grupo-MACC/entrypoint/errors"
)

// Glob patterns for certificate material under the search root. The naming
// convention comes from the deployment's cert-issuing job, which writes
// "<service>-cert.pem" / "<service>-key.pem" pairs.
const (
	certPattern = "*-cert.pem"
	keyPattern  = "*-key.pem"
)

// resolveTLS resolves the certificate and key paths independently. There is
// never a fallback to a plaintext listener: both files are mandatory.
func (r *Resolver) resolveTLS() (certFile, keyFile string, err error) {
	certFile, err = r.resolveTLSFile("certificate", r.cfg.CertFile, certPattern, config.EnvCertFile)
	if err != nil {
		return "", "", err
	}
	keyFile, err = r.resolveTLSFile("key", r.cfg.KeyFile, keyPattern, config.EnvKeyFile)
	if err != nil {
		return "", "", err
	}
	return certFile, keyFile, nil
}

// resolveTLSFile resolves one TLS file: an explicit override wins, otherwise
// the cert root is searched recursively for the role's pattern and exactly
// one match is required. Whichever way the path was obtained, it must be a
// readable regular file — that last check failing is CertInvalid, distinct
// from CertMissing, because it means "found or declared, but unusable"
// rather than "never found".
func (r *Resolver) resolveTLSFile(role, explicit, pattern, overrideVar string) (string, error) {
	path := explicit
	if path == "" {
		matches := findPatternFiles(r.cfg.CertRoot, pattern)
		switch len(matches) {
		case 0:
			return "", errors.CertMissing(role, pattern, r.cfg.CertRoot)
		case 1:
			path = matches[0]
		default:
			return "", errors.CertAmbiguous(role, overrideVar, matches)
		}
	}

	if err := ensureReadableFile(path); err != nil {
		return "", errors.CertInvalid(role, path, err)
	}
	return path, nil
}

// findPatternFiles recursively collects regular files under root whose base
// name matches the glob pattern. Results are sorted for determinism.
func findPatternFiles(root, pattern string) candidateSet {
	var matches candidateSet
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		if ok, _ := filepath.Match(pattern, d.Name()); ok {
			matches = append(matches, path)
		}
		return nil
	})
	matches.sort()
	return matches
}

// ensureReadableFile verifies the path names a regular file the entrypoint
// can open for reading.
func ensureReadableFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return &fs.PathError{Op: "open", Path: path, Err: fs.ErrInvalid}
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}
