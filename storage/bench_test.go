package storage

import (
	"strconv"
	"testing"

	"github.com/bitfsorg/fsdb-go/digest"
)

func benchStores(b *testing.B) map[string]*Store {
	b.Helper()
	stores := make(map[string]*Store)
	for _, name := range []string{"os", "mem"} {
		var fsys FS = OSFS{}
		root := b.TempDir()
		if name == "mem" {
			fsys, root = NewMemFS(), "/bench"
		}
		s, err := New(root, digest.MD5, WithFS(fsys))
		if err != nil {
			b.Fatal(err)
		}
		stores[name] = s
	}
	return stores
}

func BenchmarkStore_Put(b *testing.B) {
	for name, s := range benchStores(b) {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if err := s.Put("testkey"+strconv.Itoa(i), []byte("testvalue")); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkStore_Retrieve(b *testing.B) {
	const n = 1000
	for name, s := range benchStores(b) {
		for i := 0; i < n; i++ {
			if err := s.Put("testkey"+strconv.Itoa(i), []byte("testvalue")); err != nil {
				b.Fatal(err)
			}
		}
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if _, ok := s.Retrieve("testkey" + strconv.Itoa(i%n)); !ok {
					b.Fatal("missing key")
				}
			}
		})
	}
}

func BenchmarkStore_Delete(b *testing.B) {
	for _, cleanup := range []bool{true, false} {
		for name, s := range benchStores(b) {
			b.Run(name+"/cleanup="+strconv.FormatBool(cleanup), func(b *testing.B) {
				for i := 0; i < b.N; i++ {
					b.StopTimer()
					key := "testkey" + strconv.Itoa(i)
					if err := s.Put(key, []byte("testvalue")); err != nil {
						b.Fatal(err)
					}
					b.StartTimer()
					if err := s.Delete(key, cleanup); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}
