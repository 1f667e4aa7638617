package auth

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"

	"github.com/trezcool/edunotify/core"
	"github.com/trezcool/edunotify/core/access"
	"github.com/trezcool/edunotify/core/user"
)

func TestTokens_IssueParse(t *testing.T) {
	conf := core.NewTestConfig()
	tokens := NewTokens(conf)
	usr := user.User{ID: "u1", Email: "parent@school.test", Role: access.RoleParent}

	raw, err := tokens.Issue(usr)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	expired := &Tokens{key: []byte(conf.SecretKey), ttl: -time.Hour, issuer: conf.AppName}
	expiredRaw, _ := expired.Issue(usr)

	otherKey := &Tokens{key: []byte("another-key"), ttl: time.Hour}
	forgedRaw, _ := otherKey.Issue(usr)

	noneRaw, _ := jwt.NewWithClaims(jwt.SigningMethodNone, tokens.Claims(usr)).SignedString(jwt.UnsafeAllowNoneSignatureType)

	noID, _ := tokens.Issue(user.User{Email: "x@school.test", Role: access.RoleAdmin})

	tests := []struct {
		name    string
		raw     string
		want    access.Identity
		wantErr bool
	}{
		{name: "valid", raw: raw, want: usr.Identity()},
		{name: "bearer prefix", raw: "Bearer " + raw, want: usr.Identity()},
		{name: "empty", raw: "", wantErr: true},
		{name: "garbage", raw: "not.a.token", wantErr: true},
		{name: "expired", raw: expiredRaw, wantErr: true},
		{name: "wrong key", raw: forgedRaw, wantErr: true},
		{name: "unsigned", raw: noneRaw, wantErr: true},
		{name: "no identity", raw: noID, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tokens.Parse(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if err == nil {
				assert.Equal(t, tt.want, claims.Identity())
				assert.Equal(t, conf.AppName, claims.Issuer)
			}
		})
	}
}
