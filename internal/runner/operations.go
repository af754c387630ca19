package runner

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Adda-Baaj/petstore-client/pkg/petstore"
)

// Call is what an operation produced. Found is set only by lookups.
type Call struct {
	Result petstore.Result
	Found  *bool
}

// Operation executes one library call with arguments decoded from params.
type Operation func(ctx context.Context, c *petstore.Client, params map[string]any) (Call, error)

// Operations maps case-insensitive operation names to executors.
type Operations struct {
	ops   map[string]Operation
	names []string
}

// NewOperations registers every pet-store operation.
func NewOperations() *Operations {
	o := &Operations{ops: make(map[string]Operation)}

	o.Register("createPet", withArgs(func(ctx context.Context, c *petstore.Client, p petstore.Pet) Call {
		return result(c.Pets.CreatePet(ctx, p))
	}))
	o.Register("updatePet", withArgs(func(ctx context.Context, c *petstore.Client, p petstore.Pet) Call {
		return result(c.Pets.UpdatePet(ctx, p))
	}))
	o.Register("updatePetWithForm", withArgs(func(ctx context.Context, c *petstore.Client, p petstore.Pet) Call {
		return result(c.Pets.UpdatePetWithForm(ctx, p))
	}))
	o.Register("findPetsByStatus", withArgs(func(ctx context.Context, c *petstore.Client, a statusArgs) Call {
		return result(c.Pets.FindPetsByStatus(ctx, a.Status))
	}))
	o.Register("getPetById", withArgs(func(ctx context.Context, c *petstore.Client, a idArgs) Call {
		lookup := c.Pets.GetPetByID(ctx, a.ID)
		found := lookup.Found
		return Call{Result: lookup.Result, Found: &found}
	}))
	o.Register("deletePet", withArgs(func(ctx context.Context, c *petstore.Client, a deletePetArgs) Call {
		return result(c.Pets.DeletePet(ctx, a.ID, a.APIKey))
	}))
	o.Register("uploadImage", withArgs(func(ctx context.Context, c *petstore.Client, a uploadArgs) Call {
		return result(c.Pets.UploadImage(ctx, a.ID, a.File, a.AdditionalMetadata))
	}))

	o.Register("placeOrder", withArgs(func(ctx context.Context, c *petstore.Client, ord petstore.Order) Call {
		return result(c.Store.PlaceOrder(ctx, ord))
	}))
	o.Register("getOrderById", withArgs(func(ctx context.Context, c *petstore.Client, a idArgs) Call {
		return result(c.Store.GetOrderByID(ctx, a.ID))
	}))
	o.Register("deleteOrder", withArgs(func(ctx context.Context, c *petstore.Client, a idArgs) Call {
		return result(c.Store.DeleteOrder(ctx, a.ID))
	}))
	o.Register("getInventory", func(ctx context.Context, c *petstore.Client, _ map[string]any) (Call, error) {
		return result(c.Store.GetInventory(ctx)), nil
	})

	o.Register("createUser", withArgs(func(ctx context.Context, c *petstore.Client, u petstore.User) Call {
		return result(c.Users.CreateUser(ctx, u))
	}))
	o.Register("createUsersWithArray", withArgs(func(ctx context.Context, c *petstore.Client, a usersArgs) Call {
		return result(c.Users.CreateUsersWithArray(ctx, a.Users))
	}))
	o.Register("createUsersWithList", withArgs(func(ctx context.Context, c *petstore.Client, a usersArgs) Call {
		return result(c.Users.CreateUsersWithList(ctx, a.Users))
	}))
	o.Register("getUserByUsername", withArgs(func(ctx context.Context, c *petstore.Client, a usernameArgs) Call {
		return result(c.Users.GetUserByUsername(ctx, a.Username))
	}))
	o.Register("updateUser", withArgs(func(ctx context.Context, c *petstore.Client, a updateUserArgs) Call {
		return result(c.Users.UpdateUser(ctx, a.Username, a.User))
	}))
	o.Register("deleteUser", withArgs(func(ctx context.Context, c *petstore.Client, a usernameArgs) Call {
		return result(c.Users.DeleteUser(ctx, a.Username))
	}))
	o.Register("loginUser", withArgs(func(ctx context.Context, c *petstore.Client, a loginArgs) Call {
		return result(c.Users.LoginUser(ctx, a.Username, a.Password))
	}))
	o.Register("logoutUser", func(ctx context.Context, c *petstore.Client, _ map[string]any) (Call, error) {
		return result(c.Users.LogoutUser(ctx)), nil
	})

	return o
}

// Register adds or replaces an operation.
func (o *Operations) Register(name string, op Operation) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" || op == nil {
		return
	}
	if _, exists := o.ops[key]; !exists {
		o.names = append(o.names, name)
		sort.Strings(o.names)
	}
	o.ops[key] = op
}

// Lookup resolves an operation by name, ignoring case.
func (o *Operations) Lookup(name string) (Operation, bool) {
	op, ok := o.ops[strings.ToLower(strings.TrimSpace(name))]
	return op, ok
}

// Names lists registered operations.
func (o *Operations) Names() []string {
	return append([]string(nil), o.names...)
}

type statusArgs struct {
	Status string `json:"status"`
}

type idArgs struct {
	ID int64 `json:"id"`
}

type deletePetArgs struct {
	ID     int64  `json:"id"`
	APIKey string `json:"api_key"`
}

type uploadArgs struct {
	ID                 int64  `json:"id"`
	File               string `json:"file"`
	AdditionalMetadata string `json:"additional_metadata"`
}

type usersArgs struct {
	Users []petstore.User `json:"users"`
}

type usernameArgs struct {
	Username string `json:"username"`
}

type updateUserArgs struct {
	Username string        `json:"username"`
	User     petstore.User `json:"user"`
}

type loginArgs struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func result(r petstore.Result) Call { return Call{Result: r} }

// withArgs adapts a typed call into an Operation. params are decoded into T
// through their JSON form, so YAML and JSON registries decode the same way.
func withArgs[T any](call func(ctx context.Context, c *petstore.Client, args T) Call) Operation {
	return func(ctx context.Context, c *petstore.Client, params map[string]any) (Call, error) {
		args, err := decodeParams[T](params)
		if err != nil {
			return Call{}, err
		}
		return call(ctx, c, args), nil
	}
}

func decodeParams[T any](params map[string]any) (T, error) {
	var out T
	if len(params) == 0 {
		return out, nil
	}
	raw, err := json.Marshal(params)
	if err != nil {
		return out, fmt.Errorf("encode params: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode params: %w", err)
	}
	return out, nil
}
