package cookie

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"
)

const (
	minSecretLength = 32
	signedPrefix    = "s:"
)

// Manager writes and reads cookies with shared default attributes
// and HMAC-SHA256 signatures.
type Manager struct {
	secrets  []string
	defaults Options
}

func New(secrets []string, opts ...Option) (*Manager, error) {
	secrets = slices.DeleteFunc(slices.Clone(secrets), func(s string) bool { return s == "" })
	if len(secrets) == 0 {
		return nil, ErrNoSecret
	}

	for i, s := range secrets {
		if len(s) < minSecretLength {
			return nil, fmt.Errorf("%w: secret %d has %d chars, need at least %d", ErrSecretTooShort, i, len(s), minSecretLength)
		}
	}

	defaults := Options{
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return &Manager{
		secrets:  secrets,
		defaults: defaults.apply(opts),
	}, nil
}

func (m *Manager) Set(w http.ResponseWriter, name, value string, opts ...Option) error {
	options := m.defaults.apply(opts)

	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     options.Path,
		Domain:   options.Domain,
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	}
	if options.MaxAge > 0 {
		c.MaxAge = int(options.MaxAge / time.Second)
		c.Expires = time.Now().Add(options.MaxAge).UTC()
	}

	if err := c.Valid(); err != nil {
		return errors.Join(ErrInvalidFormat, err)
	}

	http.SetCookie(w, c)
	return nil
}

func (m *Manager) Get(r *http.Request, name string) (string, error) {
	c, err := r.Cookie(name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrCookieNotFound
		}
		return "", err
	}
	return c.Value, nil
}

// Delete expires the cookie on the client. Attributes passed in opts must
// match the ones the cookie was written with for browsers to drop it.
func (m *Manager) Delete(w http.ResponseWriter, name string, opts ...Option) {
	options := m.defaults.apply(opts)
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     options.Path,
		Domain:   options.Domain,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		Secure:   options.Secure,
		HttpOnly: options.HttpOnly,
		SameSite: options.SameSite,
	})
}

// SetSigned writes "s:<value>.<signature>". The value is readable by the
// client but cannot be altered without the secret.
func (m *Manager) SetSigned(w http.ResponseWriter, name, value string, opts ...Option) error {
	return m.Set(w, name, m.Sign(value), opts...)
}

// GetSigned returns the value of a signed cookie after verifying it
// against every configured secret.
func (m *Manager) GetSigned(r *http.Request, name string) (string, error) {
	signed, err := m.Get(r, name)
	if err != nil {
		return "", err
	}
	return m.Verify(signed)
}

// Sign returns value with the signature of the current secret attached.
func (m *Manager) Sign(value string) string {
	return signedPrefix + value + "." + signature(m.secrets[0], value)
}

// Verify strips and checks the signature produced by Sign.
func (m *Manager) Verify(signed string) (string, error) {
	rest, ok := strings.CutPrefix(signed, signedPrefix)
	if !ok {
		return "", ErrInvalidFormat
	}

	idx := strings.LastIndexByte(rest, '.')
	if idx <= 0 || idx == len(rest)-1 {
		return "", ErrInvalidFormat
	}
	value, sig := rest[:idx], rest[idx+1:]

	// Old secrets stay valid for reading during rotation.
	for _, secret := range m.secrets {
		if subtle.ConstantTimeCompare([]byte(sig), []byte(signature(secret, value))) == 1 {
			return value, nil
		}
	}

	return "", ErrInvalidSignature
}

// signature is unpadded standard base64, the layout cookie-signature writes.
func signature(secret, value string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(value))
	return base64.RawStdEncoding.EncodeToString(mac.Sum(nil))
}
