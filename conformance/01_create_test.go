package conformance

import (
	"net/http"

	g "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/storyspoiler/api-tests/schema"
	v1 "github.com/storyspoiler/api-tests/specs-go/v1"
)

var test01Create = func(st *runState) {
	g.Specify("POST a story with the required fields should yield 201 and a storyId", func() {
		SkipIfScenarioDisabled()
		resp, err := client.Create(st.cred, v1.StoryRequest{
			Title:       "Test Story",
			Description: "This is a test story.",
		})
		Expect(err).To(BeNil())
		Expect(resp.StatusCode).To(Equal(http.StatusCreated), resp.String())

		env, err := resp.Envelope()
		Expect(err).To(BeNil())
		Expect(env.HasStoryID()).To(BeTrue(), resp.String())
		st.lastCreatedStoryID = env.StoryID

		Expect(env.Message).To(Equal(v1.MsgCreated))
		Expect(schema.Validate(schema.StoryCreatedSchema(), resp.Body)).To(Succeed())
	})
}
