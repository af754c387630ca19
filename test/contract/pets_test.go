//nolint:revive // dot imports are standard for Ginkgo
package contract

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Adda-Baaj/petstore-client/pkg/petstore"
)

var _ = Describe("Pet operations", func() {
	Context("When looking up pets by id", func() {
		It("should decode a stored pet with its nested fields", func() {
			lookup := client.Pets.GetPetByID(ctx, 1)

			Expect(lookup.Result.StatusCode).To(Equal(http.StatusOK))
			Expect(lookup.Err).NotTo(HaveOccurred())
			pet, found := lookup.Get()
			Expect(found).To(BeTrue())
			Expect(pet.Name).To(Equal("doggie"))
			Expect(pet.Category).NotTo(BeNil())
			Expect(pet.Category.Name).To(Equal("Dogs"))
			Expect(pet.Tags).To(HaveLen(1))
		})

		It("should report absence without an error for unknown ids", func() {
			lookup := client.Pets.GetPetByID(ctx, 4040)

			Expect(lookup.Result.StatusCode).To(Equal(http.StatusNotFound))
			Expect(lookup.Found).To(BeFalse())
			Expect(lookup.Err).NotTo(HaveOccurred())
		})
	})

	Context("When creating pets", func() {
		It("should echo the created pet verbatim and make it retrievable", func() {
			pet := petstore.Pet{
				ID:        10,
				Name:      "Rex",
				Category:  &petstore.Category{ID: 1, Name: "Dogs"},
				PhotoURLs: []string{"a.jpg", "b.jpg"},
				Tags:      []petstore.Tag{{ID: 2, Name: "loud"}, {ID: 3, Name: "young"}},
				Status:    petstore.PetStatusAvailable,
			}

			created := client.Pets.CreatePet(ctx, pet)
			Expect(created.StatusCode).To(Equal(http.StatusOK))

			echoed, err := petstore.PetFromJSON([]byte(created.Body))
			Expect(err).NotTo(HaveOccurred())
			Expect(echoed).To(Equal(pet))

			stored, found := client.Pets.GetPetByID(ctx, 10).Get()
			Expect(found).To(BeTrue())
			Expect(stored).To(Equal(pet))
		})

		It("should reject duplicates and invalid pets", func() {
			Expect(client.Pets.CreatePet(ctx, petstore.Pet{ID: 1, Name: "again", Status: "available"}).StatusCode).
				To(Equal(http.StatusConflict))
			Expect(client.Pets.CreatePet(ctx, petstore.Pet{ID: 11, Status: "available"}).StatusCode).
				To(Equal(http.StatusBadRequest))
			Expect(client.Pets.CreatePet(ctx, petstore.Pet{ID: 12, Name: "x", Status: "lost"}).StatusCode).
				To(Equal(http.StatusBadRequest))
		})
	})

	Context("When updating pets", func() {
		It("should replace an existing pet", func() {
			res := client.Pets.UpdatePet(ctx, petstore.Pet{ID: 2, Name: "Kitty", Status: "sold"})
			Expect(res.StatusCode).To(Equal(http.StatusOK))

			pet, _ := client.Pets.GetPetByID(ctx, 2).Get()
			Expect(pet.Status).To(Equal("sold"))
		})

		It("should map invalid updates to 400, 404 and 405", func() {
			Expect(client.Pets.UpdatePet(ctx, petstore.Pet{Name: "x", Status: "sold"}).StatusCode).To(Equal(http.StatusBadRequest))
			Expect(client.Pets.UpdatePet(ctx, petstore.Pet{ID: 999, Name: "x", Status: "sold"}).StatusCode).To(Equal(http.StatusNotFound))
			Expect(client.Pets.UpdatePet(ctx, petstore.Pet{ID: 2, Name: "x", Status: "lost"}).StatusCode).To(Equal(http.StatusMethodNotAllowed))
		})

		It("should update name and status through the form endpoint", func() {
			res := client.Pets.UpdatePetWithForm(ctx, petstore.Pet{ID: 1, Name: "Buddy", Status: "pending"})
			Expect(res.StatusCode).To(Equal(http.StatusOK))

			pet, _ := client.Pets.GetPetByID(ctx, 1).Get()
			Expect(pet.Name).To(Equal("Buddy"))
			Expect(pet.Status).To(Equal("pending"))

			Expect(client.Pets.UpdatePetWithForm(ctx, petstore.Pet{ID: 77, Name: "x", Status: "sold"}).StatusCode).
				To(Equal(http.StatusNotFound))
		})
	})

	Context("When finding pets by status", func() {
		It("should return only matching pets", func() {
			res := client.Pets.FindPetsByStatus(ctx, "pending")
			Expect(res.StatusCode).To(Equal(http.StatusOK))

			pets, err := petstore.DecodeJSON[[]petstore.Pet](res)
			Expect(err).NotTo(HaveOccurred())
			Expect(pets).To(HaveLen(1))
			Expect(pets[0].ID).To(Equal(int64(2)))
		})

		It("should reject unknown statuses", func() {
			Expect(client.Pets.FindPetsByStatus(ctx, "lost").StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Context("When deleting pets", func() {
		It("should require an api key", func() {
			Expect(client.Pets.DeletePet(ctx, 1, "").StatusCode).To(Equal(http.StatusUnauthorized))
		})

		It("should delete once and then report not found", func() {
			Expect(client.Pets.DeletePet(ctx, 1, "special-key").StatusCode).To(Equal(http.StatusOK))
			Expect(client.Pets.DeletePet(ctx, 1, "special-key").StatusCode).To(Equal(http.StatusNotFound))
			Expect(client.Pets.GetPetByID(ctx, 1).Found).To(BeFalse())
		})
	})

	Context("When uploading images", func() {
		DescribeTable("should answer locally without reaching the service",
			func(file string, status int, body string) {
				// A closed server proves no request is issued.
				offline := newClient("http://127.0.0.1:1")
				res := offline.Pets.UploadImage(ctx, 424242, file, "meta")
				Expect(res).To(Equal(petstore.Result{StatusCode: status, Body: body}))
			},
			Entry("missing file", "", http.StatusBadRequest, "File is required."),
			Entry("text file", "x.txt", http.StatusUnsupportedMediaType, "Unsupported file type."),
			Entry("jpeg for an unknown pet", "x.jpg", http.StatusOK, "File uploaded successfully"),
			Entry("png", "photo.png", http.StatusOK, "File uploaded successfully"),
		)
	})
})
