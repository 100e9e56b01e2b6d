package seed

import (
	"fmt"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Fixture is hand-written demo content.
//
//	posts:
//	  - text: "Hello world"
//	    likes: 2
//	    comments:
//	      - "First!"
type Fixture struct {
	Posts []FixturePost `yaml:"posts"`
}

// FixturePost describes one post. Posts are added in file order, so the
// last entry ends up at the top of the recent view.
type FixturePost struct {
	Text     string   `yaml:"text"`
	Likes    int      `yaml:"likes"`
	Comments []string `yaml:"comments"`
}

// ParseFixture decodes a YAML fixture.
func ParseFixture(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixture: %w", err)
	}
	for i, p := range fx.Posts {
		if p.Likes < 0 {
			return nil, fmt.Errorf("parse fixture: post %d has negative likes", i)
		}
	}
	return &fx, nil
}

// LoadFixture reads and decodes a YAML fixture from fsys.
func LoadFixture(fsys afero.Fs, path string) (*Fixture, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read fixture: %w", err)
	}
	return ParseFixture(data)
}

// ApplyFixture adds the fixture's posts through the store so ids and
// timestamps are assigned the usual way. Blank posts and comments are
// skipped. It returns the number of posts added.
func (s *Seeder) ApplyFixture(fx *Fixture) int {
	added := 0
	for _, fp := range fx.Posts {
		post, ok := s.store.AddPost(fp.Text)
		if !ok {
			continue
		}
		added++
		for n := 0; n < fp.Likes; n++ {
			s.store.LikePost(post.ID)
		}
		for _, text := range fp.Comments {
			s.store.AddComment(post.ID, text)
		}
	}
	return added
}
