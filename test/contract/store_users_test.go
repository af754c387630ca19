//nolint:revive // dot imports are standard for Ginkgo
package contract

import (
	"net/http"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Adda-Baaj/petstore-client/pkg/petstore"
)

var _ = Describe("Store operations", func() {
	Context("When placing orders", func() {
		It("should store the order and keep its ship date parseable", func() {
			ship := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)
			order := petstore.Order{
				ID:       5,
				PetID:    2,
				Quantity: 1,
				ShipDate: petstore.FormatShipDate(ship),
				Status:   petstore.OrderStatusPlaced,
				Complete: true,
			}

			Expect(client.Store.PlaceOrder(ctx, order).StatusCode).To(Equal(http.StatusOK))

			res := client.Store.GetOrderByID(ctx, 5)
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			stored, err := petstore.OrderFromJSON([]byte(res.Body))
			Expect(err).NotTo(HaveOccurred())
			Expect(stored).To(Equal(order))

			when, err := stored.ShipTime()
			Expect(err).NotTo(HaveOccurred())
			Expect(when.Equal(ship)).To(BeTrue())
		})

		It("should reject orders for invalid pets", func() {
			res := client.Store.PlaceOrder(ctx, petstore.Order{ID: 6, PetID: 0, Quantity: 1})
			Expect(res.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(res.Body).To(ContainSubstring("Invalid pet ID supplied"))
		})

		It("should delete orders once", func() {
			Expect(client.Store.DeleteOrder(ctx, 1).StatusCode).To(Equal(http.StatusOK))
			Expect(client.Store.DeleteOrder(ctx, 1).StatusCode).To(Equal(http.StatusNotFound))
			Expect(client.Store.GetOrderByID(ctx, 1).StatusCode).To(Equal(http.StatusNotFound))
		})
	})

	Context("When reading the inventory", func() {
		It("should count pets by status", func() {
			inventory, err := petstore.DecodeJSON[map[string]int](client.Store.GetInventory(ctx))
			Expect(err).NotTo(HaveOccurred())
			Expect(inventory).To(HaveKeyWithValue("available", 1))
			Expect(inventory).To(HaveKeyWithValue("pending", 1))
		})

		It("should be idempotent against an unchanged backend", func() {
			Expect(client.Store.GetInventory(ctx)).To(Equal(client.Store.GetInventory(ctx)))
		})
	})
})

var _ = Describe("User operations", func() {
	Context("When creating users", func() {
		It("should create single users and batches", func() {
			Expect(client.Users.CreateUser(ctx, petstore.User{Username: "alice", Password: "pw"}).StatusCode).
				To(Equal(http.StatusOK))

			batch := []petstore.User{{Username: "bob", Password: "pw"}, {Username: "carol", Password: "pw"}}
			Expect(client.Users.CreateUsersWithArray(ctx, batch).StatusCode).To(Equal(http.StatusOK))
			Expect(client.Users.CreateUsersWithList(ctx, []petstore.User{{Username: "dave", Password: "pw"}}).StatusCode).
				To(Equal(http.StatusOK))

			for _, name := range []string{"alice", "bob", "carol", "dave"} {
				Expect(client.Users.GetUserByUsername(ctx, name).StatusCode).To(Equal(http.StatusOK))
			}
		})

		It("should reject empty batches and duplicates", func() {
			Expect(client.Users.CreateUsersWithArray(ctx, nil).StatusCode).To(Equal(http.StatusBadRequest))
			Expect(client.Users.CreateUser(ctx, petstore.User{Username: "johnDoe", Password: "x"}).StatusCode).
				To(Equal(http.StatusConflict))
			Expect(client.Users.CreateUser(ctx, petstore.User{Username: "eve", Password: "x", Email: "not-an-email"}).StatusCode).
				To(Equal(http.StatusBadRequest))
		})
	})

	Context("When reading and changing users", func() {
		It("should round-trip a stored user", func() {
			res := client.Users.GetUserByUsername(ctx, "johnDoe")
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			user, err := petstore.UserFromJSON([]byte(res.Body))
			Expect(err).NotTo(HaveOccurred())
			Expect(user.FirstName).To(Equal("John"))
		})

		It("should rename a user on update", func() {
			res := client.Users.UpdateUser(ctx, "johnDoe", petstore.User{ID: 1, Username: "johnny", Password: "secret"})
			Expect(res.StatusCode).To(Equal(http.StatusOK))
			Expect(client.Users.GetUserByUsername(ctx, "johnDoe").StatusCode).To(Equal(http.StatusNotFound))
			Expect(client.Users.GetUserByUsername(ctx, "johnny").StatusCode).To(Equal(http.StatusOK))
		})

		It("should delete once and then report not found", func() {
			Expect(client.Users.DeleteUser(ctx, "johnDoe").StatusCode).To(Equal(http.StatusOK))
			Expect(client.Users.DeleteUser(ctx, "johnDoe").StatusCode).To(Equal(http.StatusNotFound))
		})

		It("should reject an empty username", func() {
			Expect(client.Users.GetUserByUsername(ctx, "").StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Context("When logging in", func() {
		DescribeTable("should map credentials to statuses",
			func(username, password string, status int) {
				Expect(client.Users.LoginUser(ctx, username, password).StatusCode).To(Equal(status))
			},
			Entry("valid credentials", "johnDoe", "secret", http.StatusOK),
			Entry("wrong password", "johnDoe", "nope", http.StatusUnauthorized),
			Entry("unknown user", "ghost", "secret", http.StatusNotFound),
			Entry("missing password", "johnDoe", "", http.StatusBadRequest),
		)

		It("should return a session message and log out", func() {
			Expect(client.Users.LoginUser(ctx, "johnDoe", "secret").Body).To(ContainSubstring("logged in user session:"))
			Expect(client.Users.LogoutUser(ctx).StatusCode).To(Equal(http.StatusOK))
		})
	})
})

var _ = Describe("Transport failures", func() {
	It("should collapse to the internal server error sentinel", func() {
		server.Close()

		res := client.Store.GetInventory(ctx)
		Expect(res).To(Equal(petstore.TransportFailure()))
		Expect(res.StatusCode).To(Equal(http.StatusInternalServerError))
		Expect(res.Body).To(Equal("Internal server error"))
	})
})
