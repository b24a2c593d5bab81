package paymentterm_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestPaymentTerm(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "PaymentTerm Suite")
}
