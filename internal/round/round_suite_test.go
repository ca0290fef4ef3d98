package round

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestRound(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Round Suite")
}
