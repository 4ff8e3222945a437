package stubapi_test

import (
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestStubAPI(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "StubAPI Suite")
}
