package conformance

import (
	"net/http"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/storyspoiler/api-tests/schema"
)

var test03List = func(st *runState) {
	g.Specify("GET all stories should yield 200 and a non-empty list", func() {
		SkipIfScenarioDisabled()
		resp, err := client.List(st.cred)
		Expect(err).To(BeNil())
		Expect(resp.StatusCode).To(Equal(http.StatusOK), resp.String())

		n, err := resp.ArrayLen()
		Expect(err).To(BeNil())
		Expect(n).To(BeNumerically(">", 0))
		Expect(schema.Validate(schema.StoryListSchema(), resp.Body)).To(Succeed())
	})
}
