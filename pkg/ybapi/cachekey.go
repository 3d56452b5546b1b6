package ybapi

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/fivetwenty-io/ybcloud-client/internal/constants"
)

// Cursor identifies a page within a paginated query.
type Cursor struct {
	token string
	paged bool
}

// FirstPage is the cursor of the first page and of every non-paginated query.
var FirstPage = Cursor{}

// CursorAt returns the cursor for the page reached with a continuation token.
func CursorAt(token string) Cursor {
	return Cursor{token: token, paged: true}
}

// IsFirst reports whether c is the first-page sentinel.
func (c Cursor) IsFirst() bool {
	return !c.paged
}

// Token returns the continuation token, empty for the first page.
func (c Cursor) Token() string {
	return c.token
}

// String renders the cursor as it appears in a cache key. Continuation
// tokens are quoted behind a "t:" prefix, so no token renders like the
// first-page sentinel or leaks a key separator.
func (c Cursor) String() string {
	if !c.paged {
		return constants.FirstPageCursor
	}

	return "t:" + strconv.Quote(c.token)
}

// CacheKey is the identity of one cached query result. Two keys are equal
// exactly when resource tag, cursor and parameter contents are equal, so a
// CacheKey can be used directly as a map key.
type CacheKey struct {
	Resource string
	Cursor   Cursor
	Params   string
}

// ResourceTag returns the version-namespaced tag for a path template.
func ResourceTag(resourcePath string, version int) string {
	return fmt.Sprintf("/v%d%s", version, resourcePath)
}

// DeriveKey builds the cache key for a resource path, version, cursor and
// parameter bag. A nil bag and an empty bag derive different keys.
func DeriveKey(resourcePath string, version int, cursor Cursor, params Params) CacheKey {
	return CacheKey{
		Resource: ResourceTag(resourcePath, version),
		Cursor:   cursor,
		Params:   params.canonical(),
	}
}

// String renders the key as resource|cursor|params.
func (k CacheKey) String() string {
	return k.Resource + "|" + k.Cursor.String() + "|" + k.Params
}

// Hash returns a hex digest of the key for backends that restrict key
// characters. Fields are length-prefixed before hashing.
func (k CacheKey) Hash() string {
	cursor := k.Cursor.String()
	sum := sha256.Sum256(fmt.Appendf(nil, "%d:%s%d:%s%d:%s",
		len(k.Resource), k.Resource, len(cursor), cursor, len(k.Params), k.Params))

	return hex.EncodeToString(sum[:])
}
