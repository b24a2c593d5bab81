package deal_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestDeal(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Deal Suite")
}
