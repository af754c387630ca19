package petstore

import (
	"context"
	"net/http"
	"net/url"
)

const userPath = "/user"

// UserAPI wraps the /user endpoints.
type UserAPI struct {
	transport  *Transport
	legacyPath bool
}

// NewUserAPI builds the user wrapper on a shared transport. With legacyPath
// set, GetUserByUsername uses the doubled /user/user/{username} path.
func NewUserAPI(t *Transport, legacyPath bool) *UserAPI {
	if t == nil {
		panic("petstore: nil transport")
	}
	return &UserAPI{transport: t, legacyPath: legacyPath}
}

// CreateUser creates one user.
func (a *UserAPI) CreateUser(ctx context.Context, user User) Result {
	return a.postJSON(ctx, userPath, mustJSON(user))
}

// CreateUsersWithArray creates a batch through /user/createWithArray.
func (a *UserAPI) CreateUsersWithArray(ctx context.Context, users []User) Result {
	return a.postJSON(ctx, userPath+"/createWithArray", mustUsersJSON(users))
}

// CreateUsersWithList creates a batch through /user/createWithList.
func (a *UserAPI) CreateUsersWithList(ctx context.Context, users []User) Result {
	return a.postJSON(ctx, userPath+"/createWithList", mustUsersJSON(users))
}

// GetUserByUsername fetches a user.
func (a *UserAPI) GetUserByUsername(ctx context.Context, username string) Result {
	path := usernamePath(username)
	if a.legacyPath {
		path = userPath + path
	}
	return a.transport.Execute(ctx, Request{
		Method:  http.MethodGet,
		Path:    path,
		Headers: jsonHeaders(),
	})
}

// UpdateUser replaces the user stored under username.
func (a *UserAPI) UpdateUser(ctx context.Context, username string, user User) Result {
	return a.transport.Execute(ctx, Request{
		Method:  http.MethodPut,
		Path:    usernamePath(username),
		Headers: jsonHeaders(),
		Body:    mustJSON(user),
	})
}

// DeleteUser removes a user.
func (a *UserAPI) DeleteUser(ctx context.Context, username string) Result {
	return a.transport.Execute(ctx, Request{
		Method: http.MethodDelete,
		Path:   usernamePath(username),
	})
}

// LoginUser logs a user in. The service takes the credentials as query
// parameters.
func (a *UserAPI) LoginUser(ctx context.Context, username, password string) Result {
	return a.transport.Execute(ctx, Request{
		Method: http.MethodGet,
		Path:   userPath + "/login",
		Query:  url.Values{"username": {username}, "password": {password}},
	})
}

// LogoutUser ends the current session.
func (a *UserAPI) LogoutUser(ctx context.Context) Result {
	return a.transport.Execute(ctx, Request{
		Method: http.MethodGet,
		Path:   userPath + "/logout",
	})
}

func (a *UserAPI) postJSON(ctx context.Context, path string, body []byte) Result {
	return a.transport.Execute(ctx, Request{
		Method:  http.MethodPost,
		Path:    path,
		Headers: jsonHeaders(),
		Body:    body,
	})
}

func usernamePath(username string) string {
	return userPath + "/" + url.PathEscape(username)
}

func mustUsersJSON(users []User) []byte {
	data, err := UsersToJSON(users)
	if err != nil {
		panic("petstore: encode users: " + err.Error())
	}
	return data
}
