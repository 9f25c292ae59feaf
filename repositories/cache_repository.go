package repositories

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"rooms-api/domain"

	"github.com/bradfitz/gomemcache/memcache"
	"github.com/karlseguin/ccache/v3"
)

// CacheRepository define la interfaz para el caché de resultados de búsqueda
type CacheRepository interface {
	Get(key string) ([]domain.Room, int, bool)
	Set(key string, rooms []domain.Room, total int, ttl time.Duration)
	Delete(key string)
	Flush()
}

// cacheData representa los datos almacenados en caché
type cacheData struct {
	Rooms []domain.Room `json:"rooms"`
	Total int           `json:"total"`
}

// cacheRepository implementa CacheRepository con dos niveles:
// ccache local en memoria + Memcached compartido
// Además lleva un registro de claves activas para poder invalidar todo
// cuando cambia una publicación (el TTL solo no alcanza: una búsqueda
// cacheada seguiría mostrando una publicación ya rechazada)
type cacheRepository struct {
	localCache      *ccache.Cache[*cacheData]
	memcachedClient *memcache.Client

	mu         sync.Mutex
	activeKeys map[string]struct{}
}

// NewCacheRepository crea una nueva instancia de CacheRepository
func NewCacheRepository(memcachedHost string) CacheRepository {
	localCache := ccache.New(ccache.Configure[*cacheData]().MaxSize(1000))
	memcachedClient := memcache.New(memcachedHost)

	log.Printf("Cache repository initialized with Memcached at %s", memcachedHost)

	return &cacheRepository{
		localCache:      localCache,
		memcachedClient: memcachedClient,
		activeKeys:      make(map[string]struct{}),
	}
}

// Get obtiene datos del caché (primero local, luego Memcached)
func (r *cacheRepository) Get(key string) ([]domain.Room, int, bool) {
	// 1. Buscar en caché local primero
	item := r.localCache.Get(key)
	if item != nil && !item.Expired() {
		data := item.Value()
		log.Printf("Cache HIT (local): key=%s", key)
		return data.Rooms, data.Total, true
	}

	// 2. Si no está en local, buscar en Memcached
	memcachedItem, err := r.memcachedClient.Get(key)
	if err != nil {
		if err == memcache.ErrCacheMiss {
			log.Printf("Cache MISS: key=%s", key)
			return nil, 0, false
		}
		log.Printf("Error getting from Memcached: key=%s, error=%v", key, err)
		return nil, 0, false
	}

	// 3. Parsear datos de Memcached
	var data cacheData
	if err := json.Unmarshal(memcachedItem.Value, &data); err != nil {
		log.Printf("Error unmarshaling cache data from Memcached: key=%s, error=%v", key, err)
		return nil, 0, false
	}

	// 4. Guardar en caché local para próximas consultas
	r.localCache.Set(key, &data, 5*time.Minute)
	log.Printf("Cache HIT (Memcached): key=%s, stored in local cache", key)

	return data.Rooms, data.Total, true
}

// Set guarda datos en ambos niveles de caché y registra la clave
func (r *cacheRepository) Set(key string, rooms []domain.Room, total int, ttl time.Duration) {
	data := &cacheData{
		Rooms: rooms,
		Total: total,
	}

	// 1. Guardar en caché local con TTL de 5 minutos
	r.localCache.Set(key, data, 5*time.Minute)

	// 2. Registrar la clave para poder invalidarla después
	r.mu.Lock()
	r.activeKeys[key] = struct{}{}
	r.mu.Unlock()

	// 3. Serializar a JSON para Memcached
	jsonData, err := json.Marshal(data)
	if err != nil {
		log.Printf("Error marshaling cache data for Memcached: key=%s, error=%v", key, err)
		return
	}

	// 4. Guardar en Memcached (usa segundos de TTL)
	memcachedItem := &memcache.Item{
		Key:        key,
		Value:      jsonData,
		Expiration: int32(ttl / time.Second),
	}

	if err := r.memcachedClient.Set(memcachedItem); err != nil {
		log.Printf("Error setting cache in Memcached: key=%s, error=%v", key, err)
		return
	}

	log.Printf("Cache SET: key=%s, ttl=%s", key, ttl)
}

// Delete elimina datos de ambos niveles de caché
func (r *cacheRepository) Delete(key string) {
	r.localCache.Delete(key)

	r.mu.Lock()
	delete(r.activeKeys, key)
	r.mu.Unlock()

	if err := r.memcachedClient.Delete(key); err != nil {
		if err == memcache.ErrCacheMiss {
			return
		}
		log.Printf("Error deleting from Memcached: key=%s, error=%v", key, err)
		return
	}

	log.Printf("Cache DELETE: key=%s", key)
}

// Flush invalida todas las búsquedas cacheadas
// Se llama cuando cambia cualquier publicación (crear/aprobar/rechazar/borrar)
func (r *cacheRepository) Flush() {
	r.mu.Lock()
	keys := make([]string, 0, len(r.activeKeys))
	for key := range r.activeKeys {
		keys = append(keys, key)
	}
	r.activeKeys = make(map[string]struct{})
	r.mu.Unlock()

	for _, key := range keys {
		r.localCache.Delete(key)
		if err := r.memcachedClient.Delete(key); err != nil && err != memcache.ErrCacheMiss {
			log.Printf("Error flushing Memcached key=%s: %v", key, err)
		}
	}

	log.Printf("Cache FLUSH: %d keys invalidated", len(keys))
}
