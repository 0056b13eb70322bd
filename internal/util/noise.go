package util

import (
	"github.com/aquilax/go-perlin"
)

// Параметры шума Перлина для рельефа
const (
	noiseAlpha   = 2.0 // Сглаживание шума
	noiseBeta    = 2.0 // Частота шума
	noiseOctaves = 3   // Количество октав
)

// HeightNoise генерирует детерминированный 2D шум высот.
// Таблицы перестановок только читаются, поэтому экземпляр можно
// использовать из фонового генератора чанков.
type HeightNoise struct {
	p *perlin.Perlin
}

// NewHeightNoise создаёт генератор шума с указанным сидом
func NewHeightNoise(seed int64) *HeightNoise {
	return &HeightNoise{
		p: perlin.NewPerlin(noiseAlpha, noiseBeta, noiseOctaves, seed),
	}
}

// Noise2D возвращает значение шума Перлина для указанных координат (от 0 до 1)
func (n *HeightNoise) Noise2D(x, y float64) float64 {
	// Получаем значение шума (примерно от -1 до 1)
	v := n.p.Noise2D(x, y)

	// Преобразуем в диапазон от 0 до 1
	v = (v + 1.0) / 2.0
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
