package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/ow-rando/internal/errors"
	"github.com/KirkDiggler/ow-rando/internal/redis"
)

type ClientTestSuite struct {
	suite.Suite
	mr  *miniredis.Miniredis
	ctx context.Context
}

func TestClientSuite(t *testing.T) {
	suite.Run(t, new(ClientTestSuite))
}

func (s *ClientTestSuite) SetupTest() {
	s.mr = miniredis.RunT(s.T())
	s.ctx = context.Background()
}

func (s *ClientTestSuite) TestConnectSingleNode() {
	client, err := redis.Connect(s.ctx, []string{s.mr.Addr()}, nil)
	s.Require().NoError(err)
	defer func() { _ = client.Close() }()

	s.Require().NoError(client.Set(s.ctx, "k", "v", 0).Err())
	v, err := s.mr.Get("k")
	s.Require().NoError(err)
	s.Equal("v", v)
}

func (s *ClientTestSuite) TestConnectErrors() {
	testCases := []struct {
		name      string
		endpoints []string
		code      errors.Code
	}{
		{name: "no endpoints", endpoints: nil, code: errors.CodeInvalidArgument},
		{name: "empty endpoint", endpoints: []string{""}, code: errors.CodeInvalidArgument},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			_, err := redis.Connect(s.ctx, tc.endpoints, nil)
			s.Require().Error(err)
			s.Equal(tc.code, errors.GetCode(err))
		})
	}
}

func (s *ClientTestSuite) TestConnectUnreachable() {
	addr := s.mr.Addr()
	s.mr.Close()

	_, err := redis.Connect(s.ctx, []string{addr}, &redis.Options{MaxRetries: -1})
	s.Require().Error(err)
	s.Equal(errors.CodeUnavailable, errors.GetCode(err))
}
