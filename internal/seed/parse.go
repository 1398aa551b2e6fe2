package seed

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"bandiwala/internal/auth"
	"bandiwala/internal/menu"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSeed = errors.New("invalid seed file")

// namespace makes generated IDs stable across runs of the same file.
var namespace = uuid.MustParse("6f1c1d2e-8b1a-4c57-9d0e-5a4b0f3c2e71")

func ReadFile(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes and validates a seed document, filling in missing IDs.
func Parse(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidSeed, err)
	}

	if err := f.normalize(); err != nil {
		return nil, err
	}
	return &f, nil
}

func (f *File) normalize() error {
	emails := make(map[string]bool, len(f.Users))
	for i := range f.Users {
		u := &f.Users[i]
		u.Email = strings.ToLower(strings.TrimSpace(u.Email))
		u.Role = strings.ToUpper(u.Role)
		if u.Role == "" {
			u.Role = auth.RoleCustomer
		}
		if u.Name == "" || u.Email == "" || u.Password == "" {
			return fmt.Errorf("%w: user %d needs name, email and password", ErrInvalidSeed, i)
		}
		if emails[u.Email] {
			return fmt.Errorf("%w: duplicate user %s", ErrInvalidSeed, u.Email)
		}
		emails[u.Email] = true
	}

	for i := range f.Vendors {
		v := &f.Vendors[i]
		v.OwnerEmail = strings.ToLower(strings.TrimSpace(v.OwnerEmail))
		if v.Name == "" {
			return fmt.Errorf("%w: vendor %d has no name", ErrInvalidSeed, i)
		}
		if !emails[v.OwnerEmail] {
			return fmt.Errorf("%w: vendor %q owner %q is not a seeded user", ErrInvalidSeed, v.Name, v.OwnerEmail)
		}
		if v.ID == "" {
			v.ID = uuid.NewSHA1(namespace, []byte("vendor:"+v.Name)).String()
		}

		for j := range v.Items {
			it := &v.Items[j]
			if it.ID == "" {
				it.ID = uuid.NewSHA1(namespace, []byte("item:"+v.ID+":"+it.Name)).String()
			}
			mi := &menu.MenuItem{Name: it.Name, Subcategories: it.Subcategories}
			if err := menu.ValidateMenuItem(mi); err != nil {
				return fmt.Errorf("%w: vendor %q: %v", ErrInvalidSeed, v.Name, err)
			}
		}
	}

	return nil
}
