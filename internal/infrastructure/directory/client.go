// Package directory reconciles accounts against the association's LDAP
// directory and discovers new shared, role and service accounts in it.
package directory

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"

	"github.com/gewis/sudosos-syncd/internal/infrastructure/config"
	"github.com/go-ldap/ldap/v3"
	"github.com/google/uuid"
)

// ErrEntryNotFound indicates the directory holds no entry for a query
var ErrEntryNotFound = errors.New("directory: entry not found")

// Attributes read from directory entries
const (
	attrObjectGUID         = "objectGUID"
	attrDisplayName        = "displayName"
	attrEmployeeNumber     = "employeeNumber"
	attrMail               = "mail"
	attrUserAccountControl = "userAccountControl"
)

// accountDisabledBit is the userAccountControl flag marking a disabled account
const accountDisabledBit = 0x2

// Entry is the slice of a directory object the providers care about
type Entry struct {
	DN           string
	ObjectUUID   string
	DisplayName  string
	Email        string
	MemberNumber uint32
	Disabled     bool
}

// Client is the conversation the provider needs with the directory
type Client interface {
	// Bind opens and authenticates the directory connection
	Bind(ctx context.Context) error

	// Close releases the directory connection
	Close() error

	// FindByUUID fetches the entry bound to an object UUID;
	// ErrEntryNotFound when the directory no longer holds it
	FindByUUID(ctx context.Context, objectUUID string) (*Entry, error)

	// GroupMembers resolves the entries that are member of a group
	GroupMembers(ctx context.Context, groupDN string) ([]*Entry, error)
}

// LDAPClient implements Client over go-ldap
type LDAPClient struct {
	cfg  *config.DirectoryConfig
	conn *ldap.Conn
}

// NewLDAPClient creates an unconnected directory client; Bind opens the
// connection.
func NewLDAPClient(cfg *config.DirectoryConfig) *LDAPClient {
	return &LDAPClient{cfg: cfg}
}

// Bind dials the directory and authenticates with the reader credentials
func (c *LDAPClient) Bind(_ context.Context) error {
	conn, err := ldap.DialURL(c.cfg.URL,
		ldap.DialWithDialer(&net.Dialer{Timeout: c.cfg.DirectoryTimeout()}))
	if err != nil {
		return fmt.Errorf("directory: dial failed: %w", err)
	}
	conn.SetTimeout(c.cfg.DirectoryTimeout())

	if err := conn.Bind(c.cfg.BindDN, c.cfg.BindPassword); err != nil {
		_ = conn.Close()
		return fmt.Errorf("directory: bind failed: %w", err)
	}

	c.conn = conn
	return nil
}

// Close releases the directory connection
func (c *LDAPClient) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// FindByUUID fetches the entry bound to an object UUID
func (c *LDAPClient) FindByUUID(_ context.Context, objectUUID string) (*Entry, error) {
	if c.conn == nil {
		return nil, fmt.Errorf("directory: not bound")
	}

	parsed, err := uuid.Parse(objectUUID)
	if err != nil {
		return nil, fmt.Errorf("directory: invalid object UUID %q: %w", objectUUID, err)
	}

	filter := fmt.Sprintf("(objectGUID=%s)", escapeGUID(parsed))
	result, err := c.conn.Search(c.searchRequest(filter))
	if err != nil {
		return nil, fmt.Errorf("directory: search failed: %w", err)
	}
	if len(result.Entries) == 0 {
		return nil, ErrEntryNotFound
	}

	return entryFromLDAP(result.Entries[0]), nil
}

// GroupMembers resolves the entries that are member of a group
func (c *LDAPClient) GroupMembers(_ context.Context, groupDN string) ([]*Entry, error) {
	if c.conn == nil {
		return nil, fmt.Errorf("directory: not bound")
	}

	filter := fmt.Sprintf("(memberOf=%s)", ldap.EscapeFilter(groupDN))
	result, err := c.conn.Search(c.searchRequest(filter))
	if err != nil {
		return nil, fmt.Errorf("directory: group search failed: %w", err)
	}

	entries := make([]*Entry, len(result.Entries))
	for i, raw := range result.Entries {
		entries[i] = entryFromLDAP(raw)
	}
	return entries, nil
}

// searchRequest builds a subtree search under the configured base DN
func (c *LDAPClient) searchRequest(filter string) *ldap.SearchRequest {
	return ldap.NewSearchRequest(
		c.cfg.BaseDN,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		filter,
		[]string{attrObjectGUID, attrDisplayName, attrEmployeeNumber, attrMail, attrUserAccountControl},
		nil,
	)
}

// entryFromLDAP maps a raw directory entry onto the provider's view
func entryFromLDAP(raw *ldap.Entry) *Entry {
	entry := &Entry{
		DN:          raw.DN,
		DisplayName: raw.GetAttributeValue(attrDisplayName),
		Email:       raw.GetAttributeValue(attrMail),
	}

	if rawGUID := raw.GetRawAttributeValue(attrObjectGUID); len(rawGUID) == 16 {
		if parsed, err := guidFromObjectGUID(rawGUID); err == nil {
			entry.ObjectUUID = parsed.String()
		}
	}

	if number := raw.GetAttributeValue(attrEmployeeNumber); number != "" {
		if parsed, err := strconv.ParseUint(number, 10, 32); err == nil {
			entry.MemberNumber = uint32(parsed)
		}
	}

	if control := raw.GetAttributeValue(attrUserAccountControl); control != "" {
		if parsed, err := strconv.Atoi(control); err == nil {
			entry.Disabled = parsed&accountDisabledBit != 0
		}
	}

	return entry
}

// guidFromObjectGUID decodes a raw objectGUID value. Active Directory
// stores the first three GUID fields little-endian, so they are swapped
// into canonical order to match the GUID string AD tooling displays.
func guidFromObjectGUID(raw []byte) (uuid.UUID, error) {
	if len(raw) != 16 {
		return uuid.Nil, fmt.Errorf("objectGUID must be 16 bytes, got %d", len(raw))
	}
	var swapped [16]byte
	copy(swapped[:], raw)
	swapGUIDFields(swapped[:])
	return uuid.FromBytes(swapped[:])
}

// swapGUIDFields reverses the byte order of the first three GUID fields.
// The swap is its own inverse, so it converts in both directions.
func swapGUIDFields(b []byte) {
	b[0], b[1], b[2], b[3] = b[3], b[2], b[1], b[0]
	b[4], b[5] = b[5], b[4]
	b[6], b[7] = b[7], b[6]
}

// escapeGUID renders a UUID as the escaped objectGUID byte sequence LDAP
// filters expect, back in the directory's mixed-endian order.
func escapeGUID(id uuid.UUID) string {
	raw := id
	swapGUIDFields(raw[:])
	escaped := make([]byte, 0, len(raw)*3)
	for _, b := range raw {
		escaped = append(escaped, fmt.Sprintf("\\%02x", b)...)
	}
	return string(escaped)
}
