package relationship_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRelationship(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Relationship Suite")
}
