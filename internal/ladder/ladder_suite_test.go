package ladder_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestLadderSuite(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ladder Suite")
}
