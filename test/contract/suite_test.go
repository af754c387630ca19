//nolint:revive // dot imports are standard for Ginkgo
package contract

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Adda-Baaj/petstore-client/internal/twin"
	"github.com/Adda-Baaj/petstore-client/pkg/petstore"
)

const seedYAML = `
pets:
  - id: 1
    name: doggie
    category: {id: 1, name: Dogs}
    photoUrls: ["https://example.com/doggie.jpg"]
    tags: [{id: 1, name: friendly}]
    status: available
  - id: 2
    name: Kitty
    status: pending
orders:
  - {id: 1, petId: 1, quantity: 2, shipDate: "2026-01-02T10:00:00.000Z", status: approved, complete: false}
users:
  - {id: 1, username: johnDoe, firstName: John, email: john@example.com, password: secret}
`

var (
	ctx    context.Context
	server *httptest.Server
	client *petstore.Client
)

var _ = BeforeEach(func() {
	seed, err := twin.ParseSeed([]byte(seedYAML))
	Expect(err).NotTo(HaveOccurred())

	store := twin.NewMemoryStore()
	Expect(seed.Apply(store)).To(Succeed())

	server = httptest.NewServer(twin.NewRouter(store, nil))
	DeferCleanup(server.Close)

	client = newClient(server.URL)
	ctx = context.Background()
})

func newClient(baseURL string) *petstore.Client {
	return petstore.New(petstore.Config{
		BaseURL: baseURL,
		Timeout: 2 * time.Second,
	})
}

func TestContract(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Pet Store Contract Suite")
}
