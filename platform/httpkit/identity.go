package httpkit

import (
	"slices"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the authenticated caller.
type Identity interface {
	// UserID returns the user's ID, or uuid.Nil for API key callers.
	UserID() uuid.UUID
	Roles() []string
	HasRole(role string) bool
	IsAuthenticated() bool
	// AuthType is AuthTypeJWT or AuthTypeAPIKey.
	AuthType() string
	// ActorID returns the user ID for activity attribution, nil for API keys.
	ActorID() *uuid.UUID
}

type identity struct {
	userID        uuid.UUID
	roles         []string
	authType      string
	authenticated bool
}

func (i *identity) UserID() uuid.UUID        { return i.userID }
func (i *identity) Roles() []string          { return i.roles }
func (i *identity) HasRole(role string) bool { return slices.Contains(i.roles, role) }
func (i *identity) IsAuthenticated() bool    { return i.authenticated }
func (i *identity) AuthType() string         { return i.authType }

func (i *identity) ActorID() *uuid.UUID {
	if !i.authenticated || i.userID == uuid.Nil {
		return nil
	}
	id := i.userID
	return &id
}

// GetIdentity extracts the Identity from a Gin context.
// Returns an unauthenticated identity if auth middleware did not run.
func GetIdentity(c *gin.Context) Identity {
	authType := c.GetString(ContextAuthTypeKey)
	if authType == "" {
		return &identity{}
	}

	uid, _ := c.Get(ContextUserIDKey)
	userID, _ := uid.(uuid.UUID)

	var roleList []string
	if roles, ok := c.Get(ContextRolesKey); ok {
		roleList, _ = roles.([]string)
	}

	return &identity{
		userID:        userID,
		roles:         roleList,
		authType:      authType,
		authenticated: true,
	}
}
