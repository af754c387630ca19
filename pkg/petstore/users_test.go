package petstore

import (
	"context"
	"net/http"
	"testing"
)

func TestUserRequests(t *testing.T) {
	fake := &fakeHTTPClient{}
	c := newFakeClient(fake, nil)
	ctx := context.Background()
	user := User{ID: 1, Username: "johnDoe", Password: "abc123", Email: "john@example.com"}

	cases := []struct {
		name   string
		call   func()
		method string
		url    string
		body   string
	}{
		{"create", func() { c.Users.CreateUser(ctx, user) }, http.MethodPost, "/user",
			`{"id":1,"username":"johnDoe","email":"john@example.com","password":"abc123","userStatus":0}`},
		{"array", func() { c.Users.CreateUsersWithArray(ctx, []User{user}) }, http.MethodPost, "/user/createWithArray",
			`[{"id":1,"username":"johnDoe","email":"john@example.com","password":"abc123","userStatus":0}]`},
		{"empty list", func() { c.Users.CreateUsersWithList(ctx, nil) }, http.MethodPost, "/user/createWithList", `[]`},
		{"get", func() { c.Users.GetUserByUsername(ctx, "johnDoe") }, http.MethodGet, "/user/johnDoe", ""},
		{"update", func() { c.Users.UpdateUser(ctx, "johnDoe", User{Username: "johnDoe"}) }, http.MethodPut, "/user/johnDoe",
			`{"id":0,"username":"johnDoe","userStatus":0}`},
		{"delete", func() { c.Users.DeleteUser(ctx, "johnDoe") }, http.MethodDelete, "/user/johnDoe", ""},
		{"escaped", func() { c.Users.DeleteUser(ctx, "a/b#c") }, http.MethodDelete, "/user/a%2Fb%23c", ""},
		{"logout", func() { c.Users.LogoutUser(ctx) }, http.MethodGet, "/user/logout", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.call()
			req := fake.last()
			if req.Method != tc.method || req.URL != testBaseURL+tc.url {
				t.Fatalf("got %s %s want %s %s", req.Method, req.URL, tc.method, tc.url)
			}
			if string(req.Body) != tc.body {
				t.Fatalf("body = %s want %s", req.Body, tc.body)
			}
		})
	}
}

func TestLoginUserSendsCredentialsAsQuery(t *testing.T) {
	fake := &fakeHTTPClient{}
	newFakeClient(fake, nil).Users.LoginUser(context.Background(), "test", "a&b=c")
	req := fake.last()
	if req.URL != testBaseURL+"/user/login" {
		t.Fatalf("URL = %s", req.URL)
	}
	if req.Query.Get("username") != "test" || req.Query.Get("password") != "a&b=c" {
		t.Fatalf("unexpected query %v", req.Query)
	}
}

func TestLegacyUserPath(t *testing.T) {
	fake := &fakeHTTPClient{}
	c := New(Config{BaseURL: testBaseURL, LegacyUserPath: true}, WithHTTPClient(fake))

	c.Users.GetUserByUsername(context.Background(), "johnDoe")
	if got := fake.last().URL; got != testBaseURL+"/user/user/johnDoe" {
		t.Fatalf("URL = %s", got)
	}
	c.Users.DeleteUser(context.Background(), "johnDoe")
	if got := fake.last().URL; got != testBaseURL+"/user/johnDoe" {
		t.Fatalf("legacy path must only affect lookups, got %s", got)
	}
}
