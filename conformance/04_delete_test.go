package conformance

import (
	"net/http"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/storyspoiler/api-tests/schema"
	v1 "github.com/storyspoiler/api-tests/specs-go/v1"
)

var test04Delete = func(st *runState) {
	g.Specify("DELETE the created story should yield 200 and confirm the deletion", func() {
		SkipIfScenarioDisabled()
		id := SkipIfNoStory(st)
		resp, err := client.Delete(st.cred, id)
		Expect(err).To(BeNil())
		Expect(resp.StatusCode).To(Equal(http.StatusOK), resp.String())

		env, err := resp.Envelope()
		Expect(err).To(BeNil())
		Expect(env.Message).To(Equal(v1.MsgDeleted))
		Expect(schema.Validate(schema.EnvelopeSchema(), resp.Body)).To(Succeed())
	})
}
