package replay

import (
	"errors"
	"time"

	"slotinsight_backend/internal/model"

	log "github.com/sirupsen/logrus"
)

// Play - запуск воспроизведения с текущего индекса до конца сетки.
// Если сессия уже стоит на последнем кадре, воспроизведение начинается
// с нулевого индекса. Повторный вызов во время воспроизведения
// возвращает ошибку
func (s *serv) Play(speed model.PlaybackSpeed) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	sess := s.ensureSession()
	if len(sess.checkpoints) == 0 {
		// Пустая выборка: воспроизводить нечего, но это не ошибка
		return nil
	}
	if sess.playing {
		return errors.New("playback already running")
	}

	if sess.index >= len(sess.checkpoints)-1 {
		sess.index = 0
	}
	sess.playing = true

	delay := s.cfg.SpeedDelay(string(speed))
	log.WithFields(log.Fields{
		"from":  sess.index,
		"total": len(sess.checkpoints),
		"speed": string(speed),
	}).Info("replay: playback started")

	go s.run(sess, delay)
	return nil
}

// Pause - остановка воспроизведения, индекс замораживается
func (s *serv) Pause() {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.sess != nil && s.sess.playing {
		s.sess.playing = false
		log.WithField("index", s.sess.index).Info("replay: playback paused")
	}
}

// Seek - прямая установка индекса. Идущее воспроизведение
// останавливается, как при перемотке вручную
func (s *serv) Seek(index int) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	sess := s.ensureSession()
	if index < 0 || index >= len(sess.checkpoints) {
		return errors.New("checkpoint index out of range")
	}

	sess.playing = false
	sess.index = index
	return nil
}

// run - цикл воспроизведения. Каждый кадр: проверка флага паузы,
// строго последовательный шаг индекса, синхронный расчет среза,
// затем задержка темпа. Смена фильтра подменяет сессию,
// и цикл завершает работу
func (s *serv) run(sess *session, delay time.Duration) {
	for {
		time.Sleep(delay)

		s.mtx.Lock()
		if s.sess != sess || !sess.playing {
			s.mtx.Unlock()
			return
		}
		if sess.index >= len(sess.checkpoints)-1 {
			sess.playing = false
			s.mtx.Unlock()
			log.Info("replay: playback finished")
			return
		}

		sess.index++
		snap := sess.snapshotAt(sess.checkpoints[sess.index].At, sess.index)
		s.mtx.Unlock()

		log.WithFields(log.Fields{
			"index":   snap.Index,
			"players": len(snap.Players),
		}).Debug("replay: frame")
	}
}
