package timedcache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
)

type PoisonSuite struct {
	suite.Suite
}

func TestPoisonSuite(t *testing.T) {
	suite.Run(t, new(PoisonSuite))
}

// poison panics inside an Update closure and swallows the re-raised
// panic, leaving the cache poisoned.
func poison[K comparable, V any](s *PoisonSuite, c *Cache[K, V]) {
	defer func() {
		s.Require().NotNil(recover(), "the holder's panic must propagate")
	}()
	_ = c.Update(func(map[K]Entry[V]) {
		panic("holder fault")
	})
}

func (s *PoisonSuite) TestPanicPropagatesToHolder() {
	c := New[string, int](time.Minute)

	recovered := func() (r any) {
		defer func() { r = recover() }()
		_ = c.Update(func(map[string]Entry[int]) {
			panic("boom")
		})
		return nil
	}()

	s.Equal("boom", recovered)
}

func (s *PoisonSuite) TestUpdatePanicPoisons() {
	c := New[string, int](time.Minute)

	_, _, err := c.Insert("a", 1)
	s.Require().NoError(err)

	poison(s, c)

	var perr *PoisonedError

	_, _, err = c.Get("a")
	s.Require().ErrorAs(err, &perr)
	s.Equal("read", perr.Mode)

	_, err = c.GetAll()
	s.Require().ErrorAs(err, &perr)
	s.Equal("read", perr.Mode)

	_, err = c.Has("a")
	s.Error(err)

	_, err = c.Len()
	s.Error(err)

	s.Error(c.View(func(map[string]Entry[int]) {
		s.Fail("callback must not run on a poisoned lock")
	}))

	_, _, err = c.Insert("b", 2)
	s.Require().ErrorAs(err, &perr)
	s.Equal("write", perr.Mode)

	_, _, err = c.Remove("a")
	s.Require().ErrorAs(err, &perr)
	s.Equal("write", perr.Mode)

	s.Error(c.Clear())

	s.Error(c.Update(func(map[string]Entry[int]) {
		s.Fail("callback must not run on a poisoned lock")
	}))
}

func (s *PoisonSuite) TestViewPanicPoisons() {
	c := New[string, int](time.Minute)

	func() {
		defer func() {
			s.Require().NotNil(recover())
		}()
		_ = c.View(func(map[string]Entry[int]) {
			panic("reader fault")
		})
	}()

	var perr *PoisonedError
	_, _, err := c.Get("a")
	s.Require().ErrorAs(err, &perr)
	s.Equal("read", perr.Mode)
}

func (s *PoisonSuite) TestHookPanicPoisons() {
	c := New[string, int](time.Minute,
		OnHit[string, int](func(string, int) {
			panic("hook fault")
		}),
	)

	_, _, err := c.Insert("a", 1)
	s.Require().NoError(err)

	func() {
		defer func() {
			s.Require().NotNil(recover())
		}()
		_, _, _ = c.Get("a")
	}()

	var perr *PoisonedError
	_, _, err = c.Get("a")
	s.Require().ErrorAs(err, &perr)
}

func (s *PoisonSuite) TestGetOrLoadOnPoisonedCache() {
	c := New[string, int](time.Minute,
		WithLoader(func(string) (int, error) { return 1, nil }),
	)

	poison(s, c)

	var perr *PoisonedError
	_, err := c.GetOrLoad("a")
	s.Require().ErrorAs(err, &perr)
}

func (s *PoisonSuite) TestPoisoningIsPermanent() {
	c := New[string, int](time.Minute)

	poison(s, c)

	for n := 0; n < 3; n++ {
		_, _, err := c.Get("a")
		s.Error(err)
		_, _, err = c.Insert("a", 1)
		s.Error(err)
	}
}

func (s *PoisonSuite) TestErrorMessageNamesMode() {
	s.Equal(
		"timedcache: failed to acquire read guard: lock poisoned",
		(&PoisonedError{Mode: "read"}).Error(),
	)
	s.Equal(
		"timedcache: failed to acquire write guard: lock poisoned",
		(&PoisonedError{Mode: "write"}).Error(),
	)
}
