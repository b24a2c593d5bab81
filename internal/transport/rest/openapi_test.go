package rest_test

import (
	"github.com/getkin/kin-openapi/openapi3"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("OpenAPI document", func() {
	It("is a valid OpenAPI 3 description of the API", func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Validate(loader.Context)).To(Succeed())

		Expect(doc.Info.Title).To(Equal("CRM Management API"))
		Expect(doc.Paths.Value("/auth/login")).NotTo(BeNil())
		Expect(doc.Paths.Value("/relationships")).NotTo(BeNil())
		Expect(doc.Paths.Value("/deals/{id}/status")).NotTo(BeNil())
	})
})
