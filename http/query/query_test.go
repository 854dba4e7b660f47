package query

import (
	"strings"
	"testing"

	"github.com/dchest/uniuri"
	"github.com/indigo-web/utils/uf"
	"github.com/stretchr/testify/require"
)

func TestQuery(t *testing.T) {
	t.Run("single pair", func(t *testing.T) {
		query := Parse("hello=world")
		value, found := query.Get("hello")
		require.True(t, found)
		require.Equal(t, Single("world"), value)
		require.Equal(t, 1, query.Len())
	})

	t.Run("get non-existing key", func(t *testing.T) {
		query := Parse("hello=world")
		value, found := query.Get("lorem")
		require.False(t, found)
		require.Nil(t, value)
		require.False(t, query.Has("lorem"))
	})

	t.Run("repeated keys", func(t *testing.T) {
		query := Parse("a=1&b=2&a=3")
		a, found := query.Get("a")
		require.True(t, found)
		require.Equal(t, Multiple{"1", "3"}, a)
		b, found := query.Get("b")
		require.True(t, found)
		require.Equal(t, Single("2"), b)
	})

	t.Run("values keep arrival order", func(t *testing.T) {
		query := Parse("tag=x&tag=y&tag=z&tag=y")
		tag, _ := query.Get("tag")
		require.Equal(t, Multiple{"x", "y", "z", "y"}, tag)
	})

	t.Run("no equal sign", func(t *testing.T) {
		query := Parse("flag")
		value, found := query.Get("flag")
		require.True(t, found)
		require.Equal(t, Single(""), value)
	})

	t.Run("only first equal sign splits", func(t *testing.T) {
		query := Parse("expr=a=b")
		value, _ := query.Get("expr")
		require.Equal(t, Single("a=b"), value)
	})

	t.Run("empty value", func(t *testing.T) {
		query := Parse("hello=&another=pair")
		value, found := query.Get("hello")
		require.True(t, found)
		require.Equal(t, Single(""), value)
	})

	t.Run("empty key", func(t *testing.T) {
		query := Parse("=world")
		value, found := query.Get("")
		require.True(t, found)
		require.Equal(t, Single("world"), value)
	})

	t.Run("empty text", func(t *testing.T) {
		query := Parse("")
		require.Equal(t, 1, query.Len())
		value, found := query.Get("")
		require.True(t, found)
		require.Equal(t, Single(""), value)
	})

	t.Run("leading and trailing ampersands", func(t *testing.T) {
		query := Parse("&hello=world&")
		require.Equal(t, 2, query.Len())
		value, _ := query.Get("")
		require.Equal(t, Multiple{"", ""}, value)
		value, _ = query.Get("hello")
		require.Equal(t, Single("world"), value)
	})

	t.Run("no decoding", func(t *testing.T) {
		query := Parse("q=hello%20world+again")
		value, _ := query.Get("q")
		require.Equal(t, Single("hello%20world+again"), value)
	})

	t.Run("raw", func(t *testing.T) {
		const text = "a=1&b=2"
		require.Equal(t, text, Parse(text).Raw())
	})

	t.Run("iter", func(t *testing.T) {
		query := Parse("a=1&b=2&a=3")
		collected := make(map[string]Value)
		for key, value := range query.Iter() {
			collected[key] = value
		}

		require.Equal(t, map[string]Value{
			"a": Multiple{"1", "3"},
			"b": Single("2"),
		}, collected)
	})

	t.Run("random pairs", func(t *testing.T) {
		want := make(map[string]string)
		var pairs []string
		for i := 0; i < 20; i++ {
			key, value := uniuri.NewLen(8), uniuri.NewLen(16)
			want[key] = value
			pairs = append(pairs, key+"="+value)
		}

		query := Parse(strings.Join(pairs, "&"))
		require.Equal(t, len(want), query.Len())
		for key, value := range want {
			got, found := query.Get(key)
			require.True(t, found)
			require.Equal(t, Single(value), got)
		}
	})
}

func TestClone(t *testing.T) {
	buff := []byte("a=1&b=2&a=3")
	query := Parse(uf.B2S(buff)).Clone()
	for i := range buff {
		buff[i] = 'x'
	}

	a, _ := query.Get("a")
	require.Equal(t, Multiple{"1", "3"}, a)
	b, _ := query.Get("b")
	require.Equal(t, Single("2"), b)
	require.Equal(t, "a=1&b=2&a=3", query.Raw())
}

func TestHelpers(t *testing.T) {
	require.Equal(t, "x", First(Single("x")))
	require.Equal(t, "x", First(Multiple{"x", "y"}))
	require.Empty(t, First(nil))
	require.Equal(t, []string{"x"}, All(Single("x")))
	require.Equal(t, []string{"x", "y"}, All(Multiple{"x", "y"}))
	require.Nil(t, All(nil))
}

func BenchmarkParse(b *testing.B) {
	const text = "name=bob&tag=a&tag=b&flag&sort=desc"
	b.SetBytes(int64(len(text)))
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = Parse(text)
	}
}
