package conformance

import (
	"net/http"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/storyspoiler/api-tests/specs-go/v1"
)

var test05CreateInvalid = func(st *runState) {
	g.Specify("POST a story without the required fields should yield 400", func() {
		SkipIfScenarioDisabled()
		resp, err := client.Create(st.cred, v1.StoryRequest{})
		Expect(err).To(BeNil())
		Expect(resp.StatusCode).To(Equal(http.StatusBadRequest), resp.String())
	})
}
