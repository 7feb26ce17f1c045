package conformance

import (
	"net/http"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	v1 "github.com/storyspoiler/api-tests/specs-go/v1"
)

var test06EditNonexistent = func(st *runState) {
	g.Specify("PUT a nonexistent story should yield 404 and no spoilers", func() {
		SkipIfScenarioDisabled()
		resp, err := client.Edit(st.cred, nonexistentEditID, v1.StoryRequest{
			Title:       "Updated Story",
			Description: "This is an updated story.",
		})
		Expect(err).To(BeNil())
		Expect(resp.StatusCode).To(Equal(http.StatusNotFound), resp.String())

		env, err := resp.Envelope()
		Expect(err).To(BeNil())
		Expect(env.Message).To(Equal(v1.MsgNoSpoilers))
	})
}
